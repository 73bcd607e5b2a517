package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"animehub/internal/web/dto"
	"animehub/internal/web/middleware"
	"animehub/internal/web/service"

	"github.com/gin-gonic/gin"
)

const (
	msgReviewEmpty      = "Review cannot be empty"
	msgReviewUnreadable = "Your review could not be read, please try again"
	msgReviewSubmitted  = "Your review has been submitted"
	msgReviewForbidden  = "You are not authorized to delete this review."
	msgReviewDeleted    = "Review has been deleted successfully!"
)

type ReviewHandler struct {
	pages
	catalog       AnimeCatalog
	reviewService service.ReviewService
}

func NewReviewHandler(catalog AnimeCatalog, reviewService service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		pages:         pages{logger: logger},
		catalog:       catalog,
		reviewService: reviewService,
	}
}

// Create posts a review on an anime page
// POST /anime/review/:id
func (h *ReviewHandler) Create(c *gin.Context) {
	animeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.notFound(c, "Anime not found")
		return
	}
	if _, ok := h.catalog.ByID(animeID); !ok {
		h.notFound(c, "Anime not found")
		return
	}

	username, ok := middleware.CurrentUser(c)
	if !ok {
		// RequireLogin normally stops this earlier
		h.redirect(c, http.StatusSeeOther, "/login")
		return
	}

	location := animePath(strconv.FormatInt(animeID, 10))

	var form dto.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("unreadable review form", "error", err, "anime_id", animeID, "user", username)
		middleware.AddFlash(c, msgReviewUnreadable)
		h.redirect(c, http.StatusSeeOther, location)
		return
	}
	form.Normalize()

	if form.Review == "" {
		middleware.AddFlash(c, msgReviewEmpty)
		h.redirect(c, http.StatusSeeOther, location)
		return
	}

	if _, err := h.reviewService.CreateReview(c.Request.Context(), animeID, username, form.Review); err != nil {
		h.serverError(c, err)
		return
	}

	middleware.AddFlash(c, msgReviewSubmitted)
	h.redirect(c, http.StatusSeeOther, location)
}

// Delete removes one of the current user's reviews
// POST /anime/review/delete/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("review_id"), 10, 64)
	if err != nil {
		h.notFound(c, "Review not found")
		return
	}

	username, ok := middleware.CurrentUser(c)
	if !ok {
		h.redirect(c, http.StatusSeeOther, "/login")
		return
	}

	review, err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, username)
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		h.notFound(c, "Review not found")
		return
	case errors.Is(err, service.ErrNotReviewAuthor):
		h.logger.Warn("review delete refused", "review_id", reviewID, "user", username)
		middleware.AddFlash(c, msgReviewForbidden)
		location := "/"
		if review != nil {
			location = animePath(strconv.FormatInt(review.AnimeID, 10))
		}
		h.redirect(c, http.StatusSeeOther, location)
		return
	case err != nil:
		h.serverError(c, err)
		return
	}

	middleware.AddFlash(c, msgReviewDeleted)
	h.redirect(c, http.StatusSeeOther, animePath(strconv.FormatInt(review.AnimeID, 10)))
}
