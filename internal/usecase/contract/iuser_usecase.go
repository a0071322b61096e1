package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// ProfileUpdate lists the profile fields a user may change; nil means unchanged.
type ProfileUpdate struct {
	Name        *string
	Surname     *string
	Avatar      *string
	Description *string
	Website     *string
	Linkedin    *string
}

// IUserUseCase defines the interface for account operations.
type IUserUseCase interface {
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, verifier, resetToken, newPassword string) error
	LoginWithOAuth(ctx context.Context, name, surname, email string) (*entity.User, string, error)

	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, p entity.Principal, update ProfileUpdate) (*entity.User, error)
	ChangePassword(ctx context.Context, p entity.Principal, currentPassword, newPassword string) error
	UpdateNotificationPreferences(ctx context.Context, p entity.Principal, prefs entity.EmailNotifications) (*entity.User, error)
	UpdateEmailLanguage(ctx context.Context, p entity.Principal, lang string) (*entity.User, error)
	GetNotifications(ctx context.Context, p entity.Principal) ([]entity.Notification, error)
	MarkNotificationsRead(ctx context.Context, p entity.Principal) error
	DeleteAccount(ctx context.Context, p entity.Principal, password string) error

	ListInstructors(ctx context.Context) ([]*entity.User, error)
	CreateInstructor(ctx context.Context, p entity.Principal, in RegisterInput) (*entity.User, error)
}
