package usecase

import (
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	// GenerateSessionToken issues a {userId, role} token.
	GenerateSessionToken(userID string, role entity.UserRole) (string, error)
	// GeneratePendingToken issues a {pendingUserId, isPending} token.
	GeneratePendingToken(pendingUserID string) (string, error)
	// ParseToken validates either shape and returns its claims.
	ParseToken(token string) (*entity.Claims, error)
}
