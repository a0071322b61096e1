package contract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
}

type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
	// GenerateNumericCode returns n random decimal digits.
	GenerateNumericCode(n int) (string, error)
}

type IUUIDGenerator interface {
	NewUUID() string
}

// INotifier fans messages out to recipients without failing the caller.
type INotifier interface {
	// Notify sends every message and waits for the per-recipient results.
	Notify(ctx context.Context, messages []entity.Message) entity.DeliveryReport
	// NotifyAsync hands messages to background workers and returns immediately.
	NotifyAsync(messages []entity.Message)
}

// IMessageComposer renders localized emails.
type IMessageComposer interface {
	VerificationEmail(to string, lang entity.Language, name, code string) (entity.Message, error)
	PasswordResetEmail(to string, lang entity.Language, name, link string) (entity.Message, error)
	CancellationEmail(user *entity.User, workshop *entity.Workshop) (entity.Message, error)
	// UpdateEmail describes the change from before to after.
	UpdateEmail(user *entity.User, before, after *entity.Workshop) (entity.Message, error)
	ReminderEmail(user *entity.User, workshop *entity.Workshop) (entity.Message, error)
}
