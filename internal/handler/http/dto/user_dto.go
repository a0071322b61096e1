package dto

import (
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// Request DTOs for auth and user handlers

// CreateUserRequest is the public signup payload.
type CreateUserRequest struct {
	Name          string `json:"name" binding:"required"`
	Surname       string `json:"surname" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Avatar        string `json:"avatar" binding:"omitempty,url"`
	EmailLanguage string `json:"email_language" binding:"omitempty,emaillang"`
}

func (r CreateUserRequest) ToInput() usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Name:          r.Name,
		Surname:       r.Surname,
		Email:         r.Email,
		Password:      r.Password,
		Role:          entity.UserRoleUser,
		Avatar:        r.Avatar,
		EmailLanguage: entity.Language(r.EmailLanguage),
	}
}

// CreateInstructorRequest adds the public instructor profile fields.
type CreateInstructorRequest struct {
	CreateUserRequest
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	Linkedin    string `json:"linkedin" binding:"omitempty,url"`
}

func (r CreateInstructorRequest) ToInput() usecasecontract.RegisterInput {
	in := r.CreateUserRequest.ToInput()
	in.Role = entity.UserRoleInstructor
	in.Description = r.Description
	in.Website = r.Website
	in.Linkedin = r.Linkedin
	return in
}

// VerifyEmailRequest carries the code; the pending token normally comes in the
// Authorization header and PendingToken is only read when the header is absent.
type VerifyEmailRequest struct {
	PendingToken string `json:"pending_token"`
	Code         string `json:"code" binding:"required,len=6,numeric"`
}

type ResendVerificationRequest struct {
	PendingToken string `json:"pending_token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Verifier string `json:"verifier" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest holds optional profile fields; instructor-only fields are ignored for users.
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Surname     *string `json:"surname"`
	Avatar      *string `json:"avatar" binding:"omitempty,url"`
	Description *string `json:"description"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Linkedin    *string `json:"linkedin" binding:"omitempty,url"`
}

func (r UpdateUserRequest) ToProfileUpdate() usecasecontract.ProfileUpdate {
	return usecasecontract.ProfileUpdate{
		Name:        r.Name,
		Surname:     r.Surname,
		Avatar:      r.Avatar,
		Description: r.Description,
		Website:     r.Website,
		Linkedin:    r.Linkedin,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// NotificationPreferencesRequest uses pointers so that false is not mistaken for missing.
type NotificationPreferencesRequest struct {
	Workshops *bool `json:"workshops" binding:"required"`
	Changes   *bool `json:"changes" binding:"required"`
}

type EmailLanguageRequest struct {
	EmailLanguage string `json:"email_language" binding:"required,emaillang"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}
