package entity

import (
	"time"
)

// MaxNotifications caps the in-app notification list kept on a user.
const MaxNotifications = 50

// User represents a verified account in the system
type User struct {
	ID                  string             `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Surname             string             `bson:"surname" json:"surname"`
	Email               string             `bson:"email" json:"email"`
	PasswordHash        string             `bson:"password_hash" json:"-"`
	Role                UserRole           `bson:"role" json:"role"`
	IsVerified          bool               `bson:"is_verified" json:"is_verified"`
	Avatar              string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	RegisteredWorkshops []string           `bson:"registered_workshops" json:"registered_workshops"`
	Badges              []Badge            `bson:"badges" json:"badges"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Website             string             `bson:"website,omitempty" json:"website,omitempty"`
	Linkedin            string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	EmailLanguage       Language           `bson:"email_language" json:"email_language"`
	EmailNotifications  EmailNotifications `bson:"email_notifications" json:"email_notifications"`
	Notifications       []Notification     `bson:"notifications" json:"-"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleInstructor UserRole = "instructor"
)

func DefaultRole() UserRole {
	return UserRoleUser
}

// Valid reports whether r is one of the two known roles.
func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleInstructor
}

// Language is the locale used for outgoing emails.
type Language string

const (
	LanguageEN Language = "en"
	LanguageIT Language = "it"
)

// ParseLanguage falls back to English for anything it does not know.
func ParseLanguage(s string) Language {
	if Language(s) == LanguageIT {
		return LanguageIT
	}
	return LanguageEN
}

// EmailNotifications holds the per-user email opt-ins.
type EmailNotifications struct {
	Workshops bool `bson:"workshops" json:"workshops"`
	Changes   bool `bson:"changes" json:"changes"`
}

func DefaultEmailNotifications() EmailNotifications {
	return EmailNotifications{Workshops: true, Changes: true}
}

// Badge is a completion award embedded in a user document.
type Badge struct {
	WorkshopID string    `bson:"workshop_id" json:"workshop_id"`
	Name       string    `bson:"name" json:"name"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"`
	Date       time.Time `bson:"date" json:"date"`
	AwardedBy  string    `bson:"awarded_by" json:"awarded_by"`
}

// Notification is an in-app message, newest first.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Message   string    `bson:"message" json:"message"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func (u *User) IsInstructor() bool {
	return u.Role == UserRoleInstructor
}

// IsRegisteredFor reports whether the workshop id is in the user's list.
func (u *User) IsRegisteredFor(workshopID string) bool {
	for _, id := range u.RegisteredWorkshops {
		if id == workshopID {
			return true
		}
	}
	return false
}

// HasBadgeFor is a linear scan of the embedded badges.
func (u *User) HasBadgeFor(workshopID string) bool {
	for _, b := range u.Badges {
		if b.WorkshopID == workshopID {
			return true
		}
	}
	return false
}

// FullName joins name and surname for greetings.
func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}

// PendingUser is the pre-verification shadow of a User.
type PendingUser struct {
	ID               string    `bson:"_id,omitempty"`
	Name             string    `bson:"name"`
	Surname          string    `bson:"surname"`
	Email            string    `bson:"email"`
	PasswordHash     string    `bson:"password_hash"`
	Role             UserRole  `bson:"role"`
	Avatar           string    `bson:"avatar,omitempty"`
	Description      string    `bson:"description,omitempty"`
	Website          string    `bson:"website,omitempty"`
	Linkedin         string    `bson:"linkedin,omitempty"`
	EmailLanguage    Language  `bson:"email_language"`
	VerificationCode string    `bson:"verification_code"`
	CodeExpiresAt    time.Time `bson:"code_expires_at"`
	CreatedAt        time.Time `bson:"created_at"`
}

// IsExpired reports whether the verification code can no longer be used.
func (p *PendingUser) IsExpired(now time.Time) bool {
	return now.After(p.CodeExpiresAt)
}

// Promote copies the pending fields into a verified user.
func (p *PendingUser) Promote(now time.Time) *User {
	return &User{
		ID:                  p.ID,
		Name:                p.Name,
		Surname:             p.Surname,
		Email:               p.Email,
		PasswordHash:        p.PasswordHash,
		Role:                p.Role,
		IsVerified:          true,
		Avatar:              p.Avatar,
		RegisteredWorkshops: []string{},
		Badges:              []Badge{},
		Description:         p.Description,
		Website:             p.Website,
		Linkedin:            p.Linkedin,
		EmailLanguage:       p.EmailLanguage,
		EmailNotifications:  DefaultEmailNotifications(),
		Notifications:       []Notification{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
