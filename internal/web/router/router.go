package router

import (
	"log/slog"

	"animehub/internal/ratelimit"
	"animehub/internal/web/handler"
	"animehub/internal/web/middleware"
	"animehub/internal/web/service"
	"animehub/internal/web/templates"

	"github.com/gin-gonic/gin"
)

// Deps is the process-scoped state shared by every request. Catalog is
// read-only; the services write to their own stores.
type Deps struct {
	Catalog         handler.AnimeCatalog
	AccountService  service.AccountService
	ReviewService   service.ReviewService
	Sessions        *middleware.SessionManager
	LoginLimiter    ratelimit.Limiter
	HealthChecks    map[string]handler.PingFunc
	SpecialUsername string
	Logger          *slog.Logger
}

func Setup(deps Deps) (*gin.Engine, error) {
	tmpl, err := templates.Load()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(deps.Sessions.Middleware())

	// Initialize handlers
	pageHandler := handler.NewPageHandler(deps.Catalog, deps.ReviewService, deps.SpecialUsername, deps.Logger)
	authHandler := handler.NewAuthHandler(deps.AccountService, deps.Sessions, deps.Logger)
	reviewHandler := handler.NewReviewHandler(deps.Catalog, deps.ReviewService, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	requireLogin := middleware.RequireLogin(deps.Logger)
	throttle := middleware.Throttle(deps.LoginLimiter, deps.Logger)

	r.GET("/", pageHandler.Home)
	r.GET("/index.html", pageHandler.Home)
	r.GET("/categories.html", pageHandler.Categories)
	r.GET("/genres/:genre", pageHandler.Genre)
	// /anime<id>.html; gin params span whole segments
	r.GET("/:page", pageHandler.Anime)

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", throttle, authHandler.Login)
	r.GET("/signup", authHandler.SignupPage)
	r.POST("/signup", throttle, authHandler.Signup)
	r.GET("/logout", requireLogin, authHandler.Logout)

	reviews := r.Group("/anime/review", requireLogin)
	{
		reviews.POST("/:id", reviewHandler.Create)
		reviews.POST("/delete/:review_id", reviewHandler.Delete)
	}

	r.GET("/healthz", healthHandler.Check)
	r.NoRoute(handler.NotFound(deps.Logger))

	return r, nil
}
