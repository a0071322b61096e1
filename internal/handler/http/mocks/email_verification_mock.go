package mocks

import (
	"context"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// MockEmailVerificationUC is a mock implementation of IEmailVerificationUC
type MockEmailVerificationUC struct {
	RegisterErr error
	VerifyErr   error
	ResendErr   error

	PendingToken string
	SessionToken string
	User         entity.User

	LastRegister     usecasecontract.RegisterInput
	LastCode         string
	LastPendingToken string
}

var _ usecasecontract.IEmailVerificationUC = (*MockEmailVerificationUC)(nil)

func NewMockEmailVerificationUC() *MockEmailVerificationUC {
	return &MockEmailVerificationUC{
		PendingToken: "mock_pending_token",
		SessionToken: "mock_session_token",
		User: entity.User{
			ID:         "mock-user-id",
			Name:       "Ada",
			Surname:    "Lovelace",
			Email:      "ada@example.com",
			Role:       entity.UserRoleUser,
			IsVerified: true,
		},
	}
}

func (m *MockEmailVerificationUC) Register(ctx context.Context, in usecasecontract.RegisterInput) (string, error) {
	m.LastRegister = in
	if m.RegisterErr != nil {
		return "", m.RegisterErr
	}
	return m.PendingToken, nil
}

func (m *MockEmailVerificationUC) VerifyEmail(ctx context.Context, pendingToken, code string) (*entity.User, string, error) {
	m.LastCode = code
	m.LastPendingToken = pendingToken
	if m.VerifyErr != nil {
		return nil, "", m.VerifyErr
	}
	return &m.User, m.SessionToken, nil
}

func (m *MockEmailVerificationUC) ResendVerification(ctx context.Context, pendingToken string) error {
	m.LastPendingToken = pendingToken
	return m.ResendErr
}
