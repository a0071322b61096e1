package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	"github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

type ReviewHandler struct {
	reviewUC usecasecontract.IReviewUseCase
	logger   usecasecontract.IAppLogger
}

func NewReviewHandler(reviewUC usecasecontract.IReviewUseCase, logger usecasecontract.IAppLogger) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC, logger: logger}
}

// GetWorkshopReviews lists the reviews of ?workshopId=.
func (h *ReviewHandler) GetWorkshopReviews(c *gin.Context) {
	workshopID := c.Query("workshopId")
	if workshopID == "" {
		ErrorHandler(c, http.StatusBadRequest, "workshopId is required")
		return
	}
	reviews, err := h.reviewUC.GetWorkshopReviews(c.Request.Context(), workshopID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, nonNilReviews(reviews))
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, err := h.reviewUC.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, review)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	review, err := h.reviewUC.CreateReview(c.Request.Context(), p, req.WorkshopID, req.Stamp.ToStamp(), req.Comment)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	var stamp *entity.Stamp
	if req.Stamp != nil {
		s := req.Stamp.ToStamp()
		stamp = &s
	}
	review, err := h.reviewUC.UpdateReview(c.Request.Context(), p, c.Param("id"), stamp, req.Comment)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := h.reviewUC.DeleteReview(c.Request.Context(), p, c.Param("id")); err != nil {
		HandleError(c, h.logger, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Review deleted")
}

func (h *ReviewHandler) FeatureReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.FeatureReviewRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	review, err := h.reviewUC.FeatureReview(c.Request.Context(), p, req.ReviewID, *req.Featured)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, review)
}

func (h *ReviewHandler) GetFeaturedReviews(c *gin.Context) {
	reviews, err := h.reviewUC.GetFeaturedReviews(c.Request.Context())
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, nonNilReviews(reviews))
}

func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	reviews, err := h.reviewUC.GetUserReviews(c.Request.Context(), p)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, nonNilReviews(reviews))
}

func (h *ReviewHandler) CheckReview(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	workshopID := c.Query("workshopId")
	if workshopID == "" {
		ErrorHandler(c, http.StatusBadRequest, "workshopId is required")
		return
	}
	review, err := h.reviewUC.CheckReview(c.Request.Context(), p, workshopID)
	if err != nil {
		HandleError(c, h.logger, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ReviewCheckResponse{HasReviewed: review != nil, Review: review})
}

func nonNilReviews(reviews []*entity.Review) []*entity.Review {
	if reviews == nil {
		return []*entity.Review{}
	}
	return reviews
}
