package contract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type IUserRepository interface {
	// CreateUser inserts a user; a duplicate email yields errors.ErrDuplicateEmail.
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUsersByIDs returns the users that exist among ids.
	GetUsersByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	// GetUsersByRole lists users with the given role.
	GetUsersByRole(ctx context.Context, role entity.UserRole) ([]*entity.User, error)
	// GetRegisteredUsers lists users whose registered workshops contain workshopID.
	GetRegisteredUsers(ctx context.Context, workshopID string) ([]*entity.User, error)
	// UpdateUserFields sets the given fields on a user.
	UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error
	// UpdateUserPassword updates user's password by ID with the provided hashed password.
	UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error
	// AddRegisteredWorkshop adds workshopID unless already present; false means it was present.
	AddRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error)
	// RemoveRegisteredWorkshop pulls workshopID; false means it was absent.
	RemoveRegisteredWorkshop(ctx context.Context, userID, workshopID string) (bool, error)
	// RemoveWorkshopFromAll pulls workshopID from every user and returns how many were modified.
	RemoveWorkshopFromAll(ctx context.Context, workshopID string) (int64, error)
	// AddBadge appends a badge unless one exists for the workshop; false means it existed.
	AddBadge(ctx context.Context, userID string, badge entity.Badge) (bool, error)
	// PushNotification prepends a notification to each user, keeping the newest entity.MaxNotifications.
	PushNotification(ctx context.Context, userIDs []string, n entity.Notification) error
	// MarkNotificationsRead flags every notification of the user as read.
	MarkNotificationsRead(ctx context.Context, userID string) error
	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, id string) error
}
