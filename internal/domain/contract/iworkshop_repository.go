package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// WorkshopFilterOptions narrows workshop listings. Status is applied after loading
// because it is derived from the current time.
type WorkshopFilterOptions struct {
	InstructorID string
	Categories   entity.WorkshopCategories
	From         *time.Time
	To           *time.Time
}

type IWorkshopRepository interface {
	CreateWorkshop(ctx context.Context, workshop *entity.Workshop) error
	GetWorkshopByID(ctx context.Context, id string) (*entity.Workshop, error)
	GetWorkshopsByIDs(ctx context.Context, ids []string) ([]*entity.Workshop, error)
	ListWorkshops(ctx context.Context, opts *WorkshopFilterOptions) ([]*entity.Workshop, error)
	// UpdateWorkshop sets the given fields.
	UpdateWorkshop(ctx context.Context, id string, updates map[string]interface{}) error
	// IncrementRegisteredCount adds one seat unless the workshop is full; false means full.
	IncrementRegisteredCount(ctx context.Context, id string) (bool, error)
	// DecrementRegisteredCount removes one seat, never going below zero.
	DecrementRegisteredCount(ctx context.Context, id string) error
	// MarkCanceled flips canceled to true; false means it already was.
	MarkCanceled(ctx context.Context, id string) (bool, error)
	// MarkUncanceled rewrites the dates and clears canceled and reminderSent; false means it was not canceled.
	MarkUncanceled(ctx context.Context, id string, start, end time.Time) (bool, error)
	// RemoveInstructorFromAll pulls the instructor from every workshop that lists them.
	RemoveInstructorFromAll(ctx context.Context, instructorID string) (int64, error)
	// MarkReminderSent flips reminderSent to true; false means it already was.
	MarkReminderSent(ctx context.Context, id string) (bool, error)
}
