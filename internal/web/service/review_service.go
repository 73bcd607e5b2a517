package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"animehub/internal/web/models"
	"animehub/internal/web/repository"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewAuthor = errors.New("you are not the author of this review")
)

type ReviewService interface {
	CreateReview(ctx context.Context, animeID int64, username, content string) (*models.Review, error)
	ListByAnime(ctx context.Context, animeID int64) ([]models.Review, error)
	// DeleteReview also returns the review on ErrNotReviewAuthor.
	DeleteReview(ctx context.Context, reviewID int64, username string) (*models.Review, error)
}

type reviewService struct {
	reviewRepo      repository.ReviewRepository
	specialUsername string
}

// NewReviewService builds the review service. Reviews by specialUsername are
// listed ahead of all others; it grants no permissions.
func NewReviewService(reviewRepo repository.ReviewRepository, specialUsername string) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		specialUsername: specialUsername,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, animeID int64, username, content string) (*models.Review, error) {
	review := &models.Review{
		AnimeID:  animeID,
		Username: username,
		Content:  content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListByAnime(ctx context.Context, animeID int64) ([]models.Review, error) {
	reviews, err := s.reviewRepo.GetByAnime(ctx, animeID)
	if err != nil {
		return nil, err
	}
	SortReviews(reviews, s.specialUsername)
	return reviews, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID int64, username string) (*models.Review, error) {
	review, err := s.reviewRepo.Delete(ctx, reviewID, username)
	switch {
	case err == nil:
		return review, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrReviewNotFound
	case errors.Is(err, repository.ErrForbidden):
		return review, ErrNotReviewAuthor
	default:
		return nil, err
	}
}

// SortReviews orders reviews by special author first, then newest first,
// breaking timestamp ties by higher id.
func SortReviews(reviews []models.Review, special string) {
	slices.SortStableFunc(reviews, func(a, b models.Review) int {
		aSpecial := special != "" && a.Username == special
		bSpecial := special != "" && b.Username == special
		if aSpecial != bSpecial {
			if aSpecial {
				return -1
			}
			return 1
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
