package repository

import (
	"context"
	"errors"
	"fmt"

	"animehub/internal/web/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	GetByAnime(ctx context.Context, animeID int64) ([]models.Review, error)
	Delete(ctx context.Context, reviewID int64, username string) (*models.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

// GetByAnime returns the reviews of one anime, newest first.
func (r *reviewRepository) GetByAnime(ctx context.Context, animeID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("anime_id = ?", animeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("get reviews by anime: %w", err)
	}
	return reviews, nil
}

// Delete removes a review written by username. The lookup, the ownership
// check and the delete run in one transaction. The review is returned
// alongside ErrForbidden so callers know which anime it belongs to.
func (r *reviewRepository) Delete(ctx context.Context, reviewID int64, username string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get review: %w", err)
		}

		if review.Username != username {
			return ErrForbidden
		}

		result := tx.Where("id = ? AND username = ?", reviewID, username).Delete(&models.Review{})
		if result.Error != nil {
			return fmt.Errorf("delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// removed between the lookup and the delete
			return ErrNotFound
		}
		return nil
	})

	switch {
	case err == nil:
		return &review, nil
	case errors.Is(err, ErrForbidden):
		return &review, err
	default:
		return nil, err
	}
}
