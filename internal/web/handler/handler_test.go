package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"animehub/internal/catalog"
	"animehub/internal/web/handler"
	"animehub/internal/web/middleware"
	"animehub/internal/web/models"
	"animehub/internal/web/templates"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const catalogCSV = `Title,Japanese Title,Genre 1,Genre 2,Genre 3,Genre 4,Genre 5,Genre 6,Studio,Year,Episodes,Status,ID
Sample Show,Sanpuru,Comedy,Drama,,,,,Studio A,2019,12,Finished,5
Star Drift,Hoshi,Sci-Fi,Action,,,,,Studio B,2021,24,Finished,7
`

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// --- MOCK SERVICES ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) Verify(ctx context.Context, username, password string) (*models.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) CreateReview(ctx context.Context, animeID int64, username, content string) (*models.Review, error) {
	args := m.Called(ctx, animeID, username, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) ListByAnime(ctx context.Context, animeID int64) ([]models.Review, error) {
	args := m.Called(ctx, animeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID int64, username string) (*models.Review, error) {
	args := m.Called(ctx, reviewID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

// --- SETUP ---

type testEnv struct {
	router   *gin.Engine
	sessions *middleware.SessionManager
	accounts *MockAccountService
	reviews  *MockReviewService
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	return c
}

// setupRouter wires handlers the way the real router does. A request carrying
// the X-Test-User header is treated as logged in as that user.
func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := templates.Load()
	require.NoError(t, err)

	env := &testEnv{
		sessions: middleware.NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour, false, testLogger),
		accounts: new(MockAccountService),
		reviews:  new(MockReviewService),
	}
	cat := newTestCatalog(t)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(env.sessions.Middleware())
	r.Use(func(c *gin.Context) {
		if user := c.GetHeader("X-Test-User"); user != "" {
			env.sessions.Login(c, &models.Account{ID: 1, Username: user})
		}
		c.Next()
	})

	pages := handler.NewPageHandler(cat, env.reviews, "Creator", testLogger)
	auth := handler.NewAuthHandler(env.accounts, env.sessions, testLogger)
	reviews := handler.NewReviewHandler(cat, env.reviews, testLogger)

	r.GET("/", pages.Home)
	r.GET("/categories.html", pages.Categories)
	r.GET("/genres/:genre", pages.Genre)
	r.GET("/:page", pages.Anime)
	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.Login)
	r.GET("/signup", auth.SignupPage)
	r.POST("/signup", auth.Signup)
	r.GET("/logout", middleware.RequireLogin(testLogger), auth.Logout)
	g := r.Group("/anime/review", middleware.RequireLogin(testLogger))
	g.POST("/:id", reviews.Create)
	g.POST("/delete/:review_id", reviews.Delete)

	env.router = r
	return env
}

func (e *testEnv) get(path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path, user string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// flashesAfter follows up with a GET carrying the response's cookie and
// returns the rendered page, where pending flashes appear.
func (e *testEnv) flashesAfter(w *httptest.ResponseRecorder) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	next := httptest.NewRecorder()
	e.router.ServeHTTP(next, req)
	return next.Body.String()
}
