package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name          string
	Surname       string
	Email         string
	Password      string
	Role          entity.UserRole
	Avatar        string
	Description   string
	Website       string
	Linkedin      string
	EmailLanguage entity.Language
}

// IEmailVerificationUC drives the pending-user state machine.
type IEmailVerificationUC interface {
	Register(ctx context.Context, in RegisterInput) (pendingToken string, err error)
	VerifyEmail(ctx context.Context, pendingToken, code string) (*entity.User, string, error)
	ResendVerification(ctx context.Context, pendingToken string) error
}
