package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/middleware"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	GetUser(*gin.Context)
	GetCurrentUser(*gin.Context)
	UpdateUser(*gin.Context)
	ChangePassword(*gin.Context)
	UpdateNotificationPreferences(*gin.Context)
	UpdateEmailLanguage(*gin.Context)
	GetNotifications(*gin.Context)
	MarkNotificationsRead(*gin.Context)
	DeleteAccount(*gin.Context)
	ListInstructors(*gin.Context)
	CreateInstructor(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase usecasecontract.IUserUseCase
	logger      usecasecontract.IAppLogger
}

func NewUserHandler(userUsecase usecasecontract.IUserUseCase, logger usecasecontract.IAppLogger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

// principal reads the caller set by the auth middleware and answers 401 when it is missing.
func principal(c *gin.Context) (entity.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		ErrorHandler(c, http.StatusUnauthorized, domainerrors.ErrUnauthenticated.Error())
	}
	return p, ok
}

// GetUser returns the public profile of any user
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPublicUserResponse(*user))
}

// GetCurrentUser handles retrieving the current authenticated user
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

// UpdateUser handles updating user profile
func (h *UserHandler) UpdateUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), p, req.ToProfileUpdate())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.userUsecase.ChangePassword(c.Request.Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Password updated")
}

func (h *UserHandler) UpdateNotificationPreferences(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.NotificationPreferencesRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	prefs := entity.EmailNotifications{Workshops: *req.Workshops, Changes: *req.Changes}
	user, err := h.userUsecase.UpdateNotificationPreferences(c.Request.Context(), p, prefs)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *UserHandler) UpdateEmailLanguage(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.EmailLanguageRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.UpdateEmailLanguage(c.Request.Context(), p, req.EmailLanguage)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToUserResponse(*user))
}

func (h *UserHandler) GetNotifications(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	notifications, err := h.userUsecase.GetNotifications(c.Request.Context(), p)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, notifications)
}

func (h *UserHandler) MarkNotificationsRead(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.userUsecase.MarkNotificationsRead(c.Request.Context(), p); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Notifications marked as read")
}

// DeleteAccount requires the current password.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.DeleteAccountRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.userUsecase.DeleteAccount(c.Request.Context(), p, req.Password); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Account deleted")
}

func (h *UserHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.userUsecase.ListInstructors(c.Request.Context())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToPublicUserResponses(instructors))
}

func (h *UserHandler) CreateInstructor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateInstructorRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	user, err := h.userUsecase.CreateInstructor(c.Request.Context(), p, req.ToInput())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToPublicUserResponse(*user))
}
