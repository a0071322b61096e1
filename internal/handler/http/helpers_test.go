package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	handler "github.com/mikiasgoitom/GlitchLab/internal/handler/http"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domainerrors.ErrUnauthenticated, http.StatusUnauthorized},
		{domainerrors.ErrInvalidToken, http.StatusUnauthorized},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainerrors.ErrForbidden, http.StatusForbidden},
		{domainerrors.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("workshop w1: %w", domainerrors.ErrNotFound), http.StatusNotFound},
		{domainerrors.ErrValidation, http.StatusBadRequest},
		{domainerrors.ErrWorkshopFull, http.StatusBadRequest},
		{domainerrors.ErrNotPastYet, http.StatusBadRequest},
		{domainerrors.ErrDuplicateReview, http.StatusBadRequest},
		{domainerrors.ErrHasBadge, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, handler.StatusFor(tt.err))
		})
	}
}

type capturingLogger struct {
	nopLogger
	errors []string
}

func (l *capturingLogger) Errorf(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func TestHandleError_HidesInternalCause(t *testing.T) {
	logger := &capturingLogger{}
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		handler.HandleError(c, logger, errors.New("dial tcp 10.0.0.5:27017: refused"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	if assert.Len(t, logger.errors, 1) {
		assert.Contains(t, logger.errors[0], "27017")
	}
}

func TestHandleError_ReturnsDomainMessage(t *testing.T) {
	r := gin.New()
	r.GET("/full", func(c *gin.Context) {
		handler.HandleError(c, nopLogger{}, domainerrors.ErrWorkshopFull)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/full", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"workshop is full"}`, w.Body.String())
}
