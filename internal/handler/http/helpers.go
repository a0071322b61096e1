package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// BindQuery binds and validates query parameters
func BindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

var badRequestErrors = []error{
	domainerrors.ErrValidation,
	domainerrors.ErrDuplicateEmail,
	domainerrors.ErrDuplicateReview,
	domainerrors.ErrAlreadyRegistered,
	domainerrors.ErrNotRegistered,
	domainerrors.ErrAlreadyCanceled,
	domainerrors.ErrNotCanceled,
	domainerrors.ErrAlreadyAwarded,
	domainerrors.ErrAlreadyReminded,
	domainerrors.ErrHasBadge,
	domainerrors.ErrNotPastYet,
	domainerrors.ErrInvalidCode,
	domainerrors.ErrExpired,
	domainerrors.ErrWorkshopFull,
	domainerrors.ErrRegistrationClosed,
}

// StatusFor maps a use case error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrUnauthenticated),
		errors.Is(err, domainerrors.ErrInvalidToken),
		errors.Is(err, domainerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainerrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainerrors.ErrNotFound):
		return http.StatusNotFound
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// HandleError writes the mapped status. Internal causes are logged, never returned.
func HandleError(c *gin.Context, logger usecasecontract.IAppLogger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		ErrorHandler(c, status, domainerrors.ErrInternal.Error())
		return
	}
	ErrorHandler(c, status, err.Error())
}
