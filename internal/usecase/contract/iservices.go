package usecasecontract

import (
	"time"
)

// IAppLogger is the logging port used by use cases.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes the settings use cases depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetFrontendURL() string
	GetTimezone() *time.Location
	GetSessionTokenExpiry() time.Duration
	GetPendingTokenExpiry() time.Duration
	GetVerificationCodeExpiry() time.Duration
	GetPasswordResetTokenExpiry() time.Duration
}

// IValidator validates inputs that do not come through request binding.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePassword(password string) error
	NormalizeEmail(email string) string
}
