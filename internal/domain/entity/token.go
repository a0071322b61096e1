package entity

import (
	"time"
)

type TokenType string

const (
	TokenTypePasswordReset TokenType = "password_reset"
)

// Token is a stored one-time token. Session tokens are stateless and never stored.
type Token struct {
	ID        string
	UserID    string
	TokenType TokenType
	TokenHash string
	Verifier  string
	CreatedAt time.Time
	ExpiresAt time.Time
	Revoke    bool
}
