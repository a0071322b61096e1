// Package errors holds the sentinel errors shared by use cases and transport.
// Use cases wrap them with %w; the HTTP layer maps them to status codes.
package errors

import "errors"

var (
	// Authentication
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("forbidden")

	// Lookup and validation
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// Registration / verification
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidCode    = errors.New("invalid verification code")
	ErrExpired        = errors.New("verification code expired")

	// Workshop lifecycle
	ErrAlreadyRegistered  = errors.New("user already registered for this workshop")
	ErrNotRegistered      = errors.New("user not registered for this workshop")
	ErrWorkshopFull       = errors.New("workshop is full")
	ErrRegistrationClosed = errors.New("workshop is not open for registration")
	ErrAlreadyCanceled    = errors.New("workshop already canceled")
	ErrNotCanceled        = errors.New("workshop is not canceled")
	ErrAlreadyReminded    = errors.New("reminder already sent for this workshop")
	ErrHasBadge           = errors.New("user already holds a badge for this workshop")
	ErrAlreadyAwarded     = errors.New("badge already awarded for this workshop")

	// Reviews
	ErrNotPastYet      = errors.New("workshop has not ended yet")
	ErrDuplicateReview = errors.New("review already exists for this workshop")

	ErrInternal = errors.New("internal server error")
)
