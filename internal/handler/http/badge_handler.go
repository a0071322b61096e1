package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

type BadgeHandler struct {
	badgeUC usecasecontract.IBadgeUseCase
	logger  usecasecontract.IAppLogger
}

func NewBadgeHandler(badgeUC usecasecontract.IBadgeUseCase, logger usecasecontract.IAppLogger) *BadgeHandler {
	return &BadgeHandler{badgeUC: badgeUC, logger: logger}
}

func (h *BadgeHandler) AwardBadge(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UserWorkshopRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	badge, err := h.badgeUC.AwardBadge(c.Request.Context(), p, req.UserID, req.WorkshopID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, badge)
}
