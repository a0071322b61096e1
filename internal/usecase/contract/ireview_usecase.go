package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type IReviewUseCase interface {
	CreateReview(ctx context.Context, p entity.Principal, workshopID string, stamp entity.Stamp, comment string) (*entity.Review, error)
	GetReview(ctx context.Context, id string) (*entity.Review, error)
	UpdateReview(ctx context.Context, p entity.Principal, id string, stamp *entity.Stamp, comment *string) (*entity.Review, error)
	DeleteReview(ctx context.Context, p entity.Principal, id string) error
	FeatureReview(ctx context.Context, p entity.Principal, id string, featured bool) (*entity.Review, error)

	GetWorkshopReviews(ctx context.Context, workshopID string) ([]*entity.Review, error)
	GetFeaturedReviews(ctx context.Context) ([]*entity.Review, error)
	GetUserReviews(ctx context.Context, p entity.Principal) ([]*entity.Review, error)
	CheckReview(ctx context.Context, p entity.Principal, workshopID string) (*entity.Review, error)
}
