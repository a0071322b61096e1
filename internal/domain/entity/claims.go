package entity

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded form of either token shape.
// Session tokens carry UserID and Role; pending tokens carry PendingUserID and IsPending.
type Claims struct {
	UserID        string   `json:"userId,omitempty"`
	Role          UserRole `json:"role,omitempty"`
	PendingUserID string   `json:"pendingUserId,omitempty"`
	IsPending     bool     `json:"isPending,omitempty"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller, resolved once at the HTTP boundary.
type Principal struct {
	UserID string
	Role   UserRole
}

func (p Principal) IsInstructor() bool {
	return p.Role == UserRoleInstructor
}
