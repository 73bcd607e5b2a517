package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"animehub/internal/web/dto"
	"animehub/internal/web/middleware"
	"animehub/internal/web/service"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	pages
	catalog         AnimeCatalog
	reviewService   service.ReviewService
	specialUsername string
}

func NewPageHandler(catalog AnimeCatalog, reviewService service.ReviewService, specialUsername string, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		pages:           pages{logger: logger},
		catalog:         catalog,
		reviewService:   reviewService,
		specialUsername: specialUsername,
	}
}

// Home renders the landing page
// GET / and GET /index.html
func (h *PageHandler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "index.html", nil)
}

// Categories lists every genre found in the catalog
// GET /categories.html
func (h *PageHandler) Categories(c *gin.Context) {
	h.render(c, http.StatusOK, "categories.html", gin.H{
		"Title":  "Categories",
		"Genres": dto.GenreLinks(h.catalog.Genres()),
	})
}

// Genre lists the anime tagged with one genre
// GET /genres/:genre where the param is "<slug>.html"
func (h *PageHandler) Genre(c *gin.Context) {
	slug, ok := strings.CutSuffix(c.Param("genre"), ".html")
	if !ok || slug == "" {
		h.notFound(c, "Genre not found")
		return
	}

	genre := h.catalog.GenreForSlug(slug)
	h.render(c, http.StatusOK, "genre.html", gin.H{
		"Title":   genre,
		"Genre":   genre,
		"Results": h.catalog.Search(genre),
	})
}

// Anime renders one catalog entry with its reviews
// GET /anime<id>.html, routed as GET /:page
func (h *PageHandler) Anime(c *gin.Context) {
	id, ok := parseAnimePage(c.Param("page"))
	if !ok {
		h.notFound(c, "Page not found")
		return
	}

	anime, found := h.catalog.ByID(id)
	if !found {
		h.notFound(c, "Anime not found")
		return
	}

	reviews, err := h.reviewService.ListByAnime(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, err)
		return
	}

	viewer, _ := middleware.CurrentUser(c)
	h.render(c, http.StatusOK, "anime.html", gin.H{
		"Title":   anime.Title,
		"Anime":   dto.FromAnime(anime),
		"Reviews": dto.FromReviews(reviews, h.specialUsername, viewer),
	})
}

// parseAnimePage extracts 5 from "anime5.html".
func parseAnimePage(page string) (int64, bool) {
	rest, ok := strings.CutPrefix(page, "anime")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".html")
	if !ok || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
