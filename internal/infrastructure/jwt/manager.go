package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// JWTManager signs and verifies HS256 tokens.
type JWTManager struct {
	secret        []byte
	sessionExpiry time.Duration
	pendingExpiry time.Duration
	now           func() time.Time
}

func NewJWTManager(secret string, sessionExpiry, pendingExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:        []byte(secret),
		sessionExpiry: sessionExpiry,
		pendingExpiry: pendingExpiry,
		now:           time.Now,
	}
}

func (m *JWTManager) sign(claims *entity.Claims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GenerateSessionToken issues a token for a verified user.
func (m *JWTManager) GenerateSessionToken(userID, role string) (string, error) {
	return m.sign(&entity.Claims{
		UserID: userID,
		Role:   entity.UserRole(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID,
		},
	}, m.sessionExpiry)
}

// GeneratePendingToken issues a token that only the verification endpoints accept.
func (m *JWTManager) GeneratePendingToken(pendingUserID string) (string, error) {
	return m.sign(&entity.Claims{
		PendingUserID: pendingUserID,
		IsPending:     true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: pendingUserID,
		},
	}, m.pendingExpiry)
}

// VerifyToken checks signature, algorithm and expiry.
func (m *JWTManager) VerifyToken(tokenStr string) (*entity.Claims, error) {
	claims := &entity.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
