package validator

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
	"golang.org/x/net/idna"
)

// MinPasswordLength is the only password rule enforced.
const MinPasswordLength = 8

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	registerDomainValidators(v)
	return &AppValidator{validate: v}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	if err := av.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}

// ValidatePassword checks the minimum length.
func (av *AppValidator) ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// NormalizeEmail trims, lowercases the local part and converts the domain to
// its ASCII (punycode) form so that lookups are stable.
func (av *AppValidator) NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return strings.ToLower(email)
	}
	local, domain := email[:at], email[at+1:]
	if ascii, err := idna.Lookup.ToASCII(domain); err == nil {
		domain = ascii
	}
	return strings.ToLower(local) + "@" + strings.ToLower(domain)
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerDomainValidators(v)
	}
}

func registerDomainValidators(v *validator.Validate) {
	_ = v.RegisterValidation("agerange", func(fl validator.FieldLevel) bool {
		return entity.AgeRange(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("classtype", func(fl validator.FieldLevel) bool {
		return entity.ClassType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("techtype", func(fl validator.FieldLevel) bool {
		return entity.TechType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return entity.Subject(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("emaillang", emailLanguage)
}

func emailLanguage(fl validator.FieldLevel) bool {
	switch entity.Language(fl.Field().String()) {
	case entity.LanguageEN, entity.LanguageIT:
		return true
	}
	return false
}
