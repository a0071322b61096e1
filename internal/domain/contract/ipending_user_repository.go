package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type IPendingUserRepository interface {
	CreatePendingUser(ctx context.Context, pending *entity.PendingUser) error
	GetPendingUserByID(ctx context.Context, id string) (*entity.PendingUser, error)
	// DeletePendingUsersByEmail discards earlier registration attempts for an email.
	DeletePendingUsersByEmail(ctx context.Context, email string) error
	// UpdateVerificationCode re-arms the code and its expiry.
	UpdateVerificationCode(ctx context.Context, id, code string, expiresAt time.Time) error
	// ClaimPendingUser atomically removes and returns the record while it still carries code;
	// only one caller can claim it.
	ClaimPendingUser(ctx context.Context, id, code string) (*entity.PendingUser, error)
	DeletePendingUser(ctx context.Context, id string) error
}
