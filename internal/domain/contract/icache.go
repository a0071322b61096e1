package contract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// IWorkshopCache caches documents that are read far more often than written.
// A miss is reported as (nil, false, nil).
type IWorkshopCache interface {
	GetWorkshop(ctx context.Context, id string) (*entity.Workshop, bool, error)
	SetWorkshop(ctx context.Context, workshop *entity.Workshop) error
	InvalidateWorkshop(ctx context.Context, id string) error

	GetFeaturedReviews(ctx context.Context) ([]*entity.Review, bool, error)
	SetFeaturedReviews(ctx context.Context, reviews []*entity.Review) error
	InvalidateFeaturedReviews(ctx context.Context) error
}
