package handler

import (
	"log/slog"
	"net/http"

	"animehub/internal/catalog"
	"animehub/internal/web/middleware"

	"github.com/gin-gonic/gin"
)

// AnimeCatalog is the read-only catalog the pages are built from.
type AnimeCatalog interface {
	ByID(id int64) (catalog.Anime, bool)
	Search(genre string) []catalog.Result
	Genres() []string
	GenreForSlug(slug string) string
}

// pages holds the helpers every HTML handler shares.
type pages struct {
	logger *slog.Logger
}

// render drains pending flashes into the page, persists the session and
// writes the template.
func (p pages) render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	user, _ := middleware.CurrentUser(c)
	data["CurrentUser"] = user
	data["Flashes"] = middleware.Flashes(c)

	if err := middleware.SaveSession(c); err != nil {
		p.logger.Error("save session", "error", err, "path", c.Request.URL.Path)
	}
	c.HTML(status, page, data)
}

// redirect persists the session, then redirects.
func (p pages) redirect(c *gin.Context, code int, location string) {
	if err := middleware.SaveSession(c); err != nil {
		p.logger.Error("save session", "error", err, "path", c.Request.URL.Path)
	}
	c.Redirect(code, location)
}

func (p pages) notFound(c *gin.Context, message string) {
	p.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not Found",
		"Message": message,
	})
}

func (p pages) serverError(c *gin.Context, err error) {
	p.logger.Error("request failed", "error", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	p.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Something went wrong",
		"Message": "Please try again later.",
	})
}

// NotFound is the router's fallback for unknown paths.
func NotFound(logger *slog.Logger) gin.HandlerFunc {
	p := pages{logger: logger}
	return func(c *gin.Context) {
		p.notFound(c, "Page not found")
	}
}

func animePath(id string) string {
	return "/anime" + id + ".html"
}
