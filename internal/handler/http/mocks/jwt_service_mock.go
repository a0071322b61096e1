package mocks

import (
	"errors"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	"github.com/mikiasgoitom/GlitchLab/internal/usecase"
)

// MockJWTService resolves tokens from a fixed table.
type MockJWTService struct {
	Tokens map[string]*entity.Claims
}

var _ usecase.JWTService = (*MockJWTService)(nil)

func NewMockJWTService() *MockJWTService {
	return &MockJWTService{Tokens: map[string]*entity.Claims{
		"user-token":       {UserID: "user-1", Role: entity.UserRoleUser},
		"instructor-token": {UserID: "inst-1", Role: entity.UserRoleInstructor},
		"pending-token":    {PendingUserID: "pending-1", IsPending: true},
	}}
}

func (m *MockJWTService) GenerateSessionToken(userID string, role entity.UserRole) (string, error) {
	return "session:" + userID, nil
}

func (m *MockJWTService) GeneratePendingToken(pendingUserID string) (string, error) {
	return "pending:" + pendingUserID, nil
}

func (m *MockJWTService) ParseToken(token string) (*entity.Claims, error) {
	claims, ok := m.Tokens[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return claims, nil
}
