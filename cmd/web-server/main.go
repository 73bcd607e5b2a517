package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animehub/database"
	"animehub/internal/catalog"
	"animehub/internal/config"
	"animehub/internal/logging"
	"animehub/internal/ratelimit"
	"animehub/internal/web/handler"
	"animehub/internal/web/middleware"
	"animehub/internal/web/models"
	"animehub/internal/web/repository"
	"animehub/internal/web/router"
	"animehub/internal/web/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)

	// The catalog is read once; a broken dataset stops startup
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "records", cat.Len(), "genres", len(cat.Genres()))

	accountsDB, err := database.Connect(cfg.AccountsDatabaseURL, logger, &models.Account{})
	if err != nil {
		logger.Error("failed to open account store", "error", err)
		os.Exit(1)
	}
	defer closeDB(logger, "accounts", accountsDB)

	reviewsDB, err := database.Connect(cfg.ReviewsDatabaseURL, logger, &models.Review{})
	if err != nil {
		logger.Error("failed to open review store", "error", err)
		os.Exit(1)
	}
	defer closeDB(logger, "reviews", reviewsDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(accountsDB)
	reviewRepo := repository.NewReviewRepository(reviewsDB)

	// Initialize services
	accountService := service.NewAccountService(accountRepo)
	reviewService := service.NewReviewService(reviewRepo, cfg.SpecialUsername)

	sessions := middleware.NewSessionManager([]byte(cfg.SessionSecret), cfg.SessionMaxAge, cfg.IsProduction(), logger)

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.LoginRatePerMinute, cfg.LoginBurst)
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		limiter = ratelimit.NewRedisLimiter(client, cfg.LoginRatePerMinute, cfg.LoginBurst)
		logger.Info("login throttle shared through redis")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.Setup(router.Deps{
		Catalog:        cat,
		AccountService: accountService,
		ReviewService:  reviewService,
		Sessions:       sessions,
		LoginLimiter:   limiter,
		HealthChecks: map[string]handler.PingFunc{
			"accounts": func(ctx context.Context) error { return database.Ping(ctx, accountsDB) },
			"reviews":  func(ctx context.Context) error { return database.Ping(ctx, reviewsDB) },
		},
		SpecialUsername: cfg.SpecialUsername,
		Logger:          logger,
	})
	if err != nil {
		logger.Error("failed to set up router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("web server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		logger.Info("received shutdown signal")
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped gracefully")
}

func closeDB(logger *slog.Logger, name string, db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logger.Error("failed to close database", "store", name, "error", err)
	}
}
