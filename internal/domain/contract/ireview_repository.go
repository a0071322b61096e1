package contract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type IReviewRepository interface {
	// CreateReview inserts a review; a second review for the same pair yields errors.ErrDuplicateReview.
	CreateReview(ctx context.Context, review *entity.Review) error
	GetReviewByID(ctx context.Context, id string) (*entity.Review, error)
	GetReviewByUserAndWorkshop(ctx context.Context, userID, workshopID string) (*entity.Review, error)
	GetReviewsByWorkshop(ctx context.Context, workshopID string) ([]*entity.Review, error)
	GetReviewsByUser(ctx context.Context, userID string) ([]*entity.Review, error)
	GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error)
	UpdateReview(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteReview(ctx context.Context, id string) error
	// DeleteReviewsByUser removes every review authored by userID.
	DeleteReviewsByUser(ctx context.Context, userID string) (int64, error)
}
