package dto

import (
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

// UserResponse is the DTO for the authenticated user's own account.
type UserResponse struct {
	ID                  string                    `json:"id"`
	Name                string                    `json:"name"`
	Surname             string                    `json:"surname"`
	Email               string                    `json:"email"`
	Role                string                    `json:"role"`
	Avatar              string                    `json:"avatar,omitempty"`
	Description         string                    `json:"description,omitempty"`
	Website             string                    `json:"website,omitempty"`
	Linkedin            string                    `json:"linkedin,omitempty"`
	RegisteredWorkshops []string                  `json:"registered_workshops"`
	Badges              []entity.Badge            `json:"badges"`
	EmailLanguage       string                    `json:"email_language"`
	EmailNotifications  entity.EmailNotifications `json:"email_notifications"`
	CreatedAt           string                    `json:"created_at"`
}

// PublicUserResponse hides contact details and registrations.
type PublicUserResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Surname     string         `json:"surname"`
	Role        string         `json:"role"`
	Avatar      string         `json:"avatar,omitempty"`
	Description string         `json:"description,omitempty"`
	Website     string         `json:"website,omitempty"`
	Linkedin    string         `json:"linkedin,omitempty"`
	Badges      []entity.Badge `json:"badges"`
}

// AuthResponse is returned by login and email verification.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// PendingResponse is returned by signup and carries the pending token.
type PendingResponse struct {
	Message      string `json:"message"`
	PendingToken string `json:"pending_token"`
}

// converts an entity.User to a UserResponse DTO.
func ToUserResponse(user entity.User) UserResponse {
	registered := user.RegisteredWorkshops
	if registered == nil {
		registered = []string{}
	}
	badges := user.Badges
	if badges == nil {
		badges = []entity.Badge{}
	}
	return UserResponse{
		ID:                  user.ID,
		Name:                user.Name,
		Surname:             user.Surname,
		Email:               user.Email,
		Role:                string(user.Role),
		Avatar:              user.Avatar,
		Description:         user.Description,
		Website:             user.Website,
		Linkedin:            user.Linkedin,
		RegisteredWorkshops: registered,
		Badges:              badges,
		EmailLanguage:       string(user.EmailLanguage),
		EmailNotifications:  user.EmailNotifications,
		CreatedAt:           user.CreatedAt.Format(time.RFC3339),
	}
}

func ToPublicUserResponse(user entity.User) PublicUserResponse {
	badges := user.Badges
	if badges == nil {
		badges = []entity.Badge{}
	}
	return PublicUserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Surname:     user.Surname,
		Role:        string(user.Role),
		Avatar:      user.Avatar,
		Description: user.Description,
		Website:     user.Website,
		Linkedin:    user.Linkedin,
		Badges:      badges,
	}
}

func ToPublicUserResponses(users []*entity.User) []PublicUserResponse {
	out := make([]PublicUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToPublicUserResponse(*u))
	}
	return out
}

// WorkshopResponse embeds the stored workshop and adds its derived status.
type WorkshopResponse struct {
	*entity.Workshop
	Status    entity.WorkshopStatus `json:"status"`
	SeatsLeft int                   `json:"seats_left"`
}

func ToWorkshopResponse(w *entity.Workshop, now time.Time) WorkshopResponse {
	left := w.Capacity - w.RegisteredCount
	if left < 0 {
		left = 0
	}
	return WorkshopResponse{Workshop: w, Status: w.Status(now), SeatsLeft: left}
}

func ToWorkshopResponses(ws []*entity.Workshop, now time.Time) []WorkshopResponse {
	out := make([]WorkshopResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToWorkshopResponse(w, now))
	}
	return out
}

// RegisteredUserResponse is one row of an instructor's registrant list.
type RegisteredUserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	HasBadge bool   `json:"has_badge"`
}

// DeliveryReportResponse summarizes a reminder fan-out.
type DeliveryReportResponse struct {
	Total  int      `json:"total"`
	Sent   int      `json:"sent"`
	Failed []string `json:"failed"`
}

func ToDeliveryReportResponse(r entity.DeliveryReport) DeliveryReportResponse {
	failed := []string{}
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res.To)
		}
	}
	return DeliveryReportResponse{Total: r.Total(), Sent: r.Sent(), Failed: failed}
}

// ReviewCheckResponse tells the client whether the caller already reviewed a workshop.
type ReviewCheckResponse struct {
	HasReviewed bool           `json:"has_reviewed"`
	Review      *entity.Review `json:"review,omitempty"`
}

// MessageResponse is a generic response for success/error messages.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
