package jwt

import (
	"fmt"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/usecase"
)

// JWTServiceAdapter adapts JWTManager to the usecase.JWTService interface.
type JWTServiceAdapter struct {
	mgr *JWTManager
}

// NewJWTService creates a new usecase.JWTService from JWTManager
func NewJWTService(mgr *JWTManager) usecase.JWTService {
	return &JWTServiceAdapter{mgr: mgr}
}

func (a *JWTServiceAdapter) GenerateSessionToken(userID string, role entity.UserRole) (string, error) {
	return a.mgr.GenerateSessionToken(userID, string(role))
}

func (a *JWTServiceAdapter) GeneratePendingToken(pendingUserID string) (string, error) {
	return a.mgr.GeneratePendingToken(pendingUserID)
}

// ParseToken validates a token and folds every failure into ErrInvalidToken.
func (a *JWTServiceAdapter) ParseToken(tokenStr string) (*entity.Claims, error) {
	claims, err := a.mgr.VerifyToken(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrInvalidToken, err)
	}
	return claims, nil
}
