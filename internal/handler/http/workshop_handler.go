package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	"github.com/mikiasgoitom/GlitchLab/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

type WorkshopHandler struct {
	workshopUC usecasecontract.IWorkshopUseCase
	logger     usecasecontract.IAppLogger
	now        func() time.Time
}

func NewWorkshopHandler(workshopUC usecasecontract.IWorkshopUseCase, logger usecasecontract.IAppLogger) *WorkshopHandler {
	return &WorkshopHandler{workshopUC: workshopUC, logger: logger, now: time.Now}
}

// ListWorkshops is public; status is derived at request time.
func (h *WorkshopHandler) ListWorkshops(c *gin.Context) {
	var q dto.WorkshopQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	workshops, err := h.workshopUC.ListWorkshops(c.Request.Context(), q.ToFilter())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToWorkshopResponses(workshops, h.now()))
}

func (h *WorkshopHandler) GetWorkshop(c *gin.Context) {
	w, err := h.workshopUC.GetWorkshop(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToWorkshopResponse(w, h.now()))
}

func (h *WorkshopHandler) CreateWorkshop(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateWorkshopRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	w, err := h.workshopUC.CreateWorkshop(c.Request.Context(), p, req.ToInput())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, dto.ToWorkshopResponse(w, h.now()))
}

func (h *WorkshopHandler) UpdateWorkshop(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateWorkshopRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	w, err := h.workshopUC.UpdateWorkshop(c.Request.Context(), p, c.Param("id"), req.ToInput())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToWorkshopResponse(w, h.now()))
}

func (h *WorkshopHandler) CancelWorkshop(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.workshopUC.CancelWorkshop(c.Request.Context(), p, c.Param("id")); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Workshop canceled")
}

func (h *WorkshopHandler) UncancelWorkshop(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UncancelWorkshopRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	w, err := h.workshopUC.UncancelWorkshop(c.Request.Context(), p, req.WorkshopID, req.StartDate, req.EndDate)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToWorkshopResponse(w, h.now()))
}

// SendReminder waits for the fan-out and reports per-recipient failures.
func (h *WorkshopHandler) SendReminder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	report, err := h.workshopUC.SendReminder(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToDeliveryReportResponse(report))
}

func (h *WorkshopHandler) Register(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.WorkshopRegistrationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	err := h.workshopUC.Register(c.Request.Context(), p, req.WorkshopID)
	metrics.WorkshopRegistrations.WithLabelValues(registrationOutcome(err)).Inc()
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Registered for workshop")
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return "registered"
	case errors.Is(err, domainerrors.ErrWorkshopFull):
		return "full"
	case errors.Is(err, domainerrors.ErrRegistrationClosed):
		return "closed"
	case errors.Is(err, domainerrors.ErrAlreadyRegistered):
		return "duplicate"
	}
	return "error"
}

func (h *WorkshopHandler) Unregister(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.WorkshopRegistrationRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.workshopUC.Unregister(c.Request.Context(), p, req.WorkshopID); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Unregistered from workshop")
}

func (h *WorkshopHandler) RemoveUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UserWorkshopRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if err := h.workshopUC.RemoveUser(c.Request.Context(), p, req.UserID, req.WorkshopID); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "User removed from workshop")
}

func (h *WorkshopHandler) GetRegisteredUsers(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	workshopID := c.Query("workshopId")
	if workshopID == "" {
		ErrorHandler(c, http.StatusBadRequest, "workshopId is required")
		return
	}
	users, err := h.workshopUC.GetRegisteredUsers(c.Request.Context(), p, workshopID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	out := make([]dto.RegisteredUserResponse, 0, len(users))
	for _, ru := range users {
		out = append(out, dto.RegisteredUserResponse{
			ID:       ru.User.ID,
			Name:     ru.User.Name,
			Surname:  ru.User.Surname,
			Email:    ru.User.Email,
			Avatar:   ru.User.Avatar,
			HasBadge: ru.HasBadge,
		})
	}
	SuccessHandler(c, http.StatusOK, out)
}
