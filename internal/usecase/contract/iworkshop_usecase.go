package usecasecontract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// WorkshopInput carries the editable workshop fields; nil means unchanged on update.
type WorkshopInput struct {
	Name          *string
	Description   *string
	Translations  map[entity.Language]entity.WorkshopTranslation
	StartDate     *time.Time
	EndDate       *time.Time
	Location      *string
	Capacity      *int
	Categories    *entity.WorkshopCategories
	InstructorIDs []string
	BadgeName     *string
	BadgeImage    *string
	BgColor       *string
}

// WorkshopFilter narrows public listings.
type WorkshopFilter struct {
	Status       *entity.WorkshopStatus
	InstructorID string
	Categories   entity.WorkshopCategories
}

// RegisteredUser is a registrant as seen by an instructor.
type RegisteredUser struct {
	User     *entity.User
	HasBadge bool
}

type IWorkshopUseCase interface {
	CreateWorkshop(ctx context.Context, p entity.Principal, in WorkshopInput) (*entity.Workshop, error)
	GetWorkshop(ctx context.Context, id string) (*entity.Workshop, error)
	ListWorkshops(ctx context.Context, filter WorkshopFilter) ([]*entity.Workshop, error)
	UpdateWorkshop(ctx context.Context, p entity.Principal, id string, in WorkshopInput) (*entity.Workshop, error)
	CancelWorkshop(ctx context.Context, p entity.Principal, id string) error
	UncancelWorkshop(ctx context.Context, p entity.Principal, id string, start, end time.Time) (*entity.Workshop, error)
	SendReminder(ctx context.Context, p entity.Principal, id string) (entity.DeliveryReport, error)

	Register(ctx context.Context, p entity.Principal, workshopID string) error
	Unregister(ctx context.Context, p entity.Principal, workshopID string) error
	RemoveUser(ctx context.Context, p entity.Principal, userID, workshopID string) error
	GetRegisteredUsers(ctx context.Context, p entity.Principal, workshopID string) ([]RegisteredUser, error)
}

type IBadgeUseCase interface {
	AwardBadge(ctx context.Context, p entity.Principal, userID, workshopID string) (*entity.Badge, error)
}
