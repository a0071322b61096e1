package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	domainerrors "github.com/mikiasgoitom/GlitchLab/internal/domain/errors"
	handler "github.com/mikiasgoitom/GlitchLab/internal/handler/http"
	dto "github.com/mikiasgoitom/GlitchLab/internal/handler/http/dto"
	mocks "github.com/mikiasgoitom/GlitchLab/internal/handler/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReviewRouter(h *handler.ReviewHandler, p entity.Principal) *gin.Engine {
	r := gin.New()
	r.GET("/reviews", h.GetWorkshopReviews)
	r.GET("/reviews/:id", h.GetReview)

	authed := r.Group("", as(p))
	authed.POST("/reviews", h.CreateReview)
	authed.GET("/reviews/check", h.CheckReview)
	authed.PUT("/reviews/:id", h.UpdateReview)
	authed.PUT("/reviews/feature", h.FeatureReview)
	return r
}

func validStamp() dto.StampRequest {
	return dto.StampRequest{CircleColor: "#ff00aa", CircleFont: "mono", CircleText: "glitch"}
}

func TestCreateReview(t *testing.T) {
	uc := mocks.NewMockReviewUseCase()
	r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

	w := doJSON(r, http.MethodPost, "/reviews", dto.CreateReviewRequest{WorkshopID: "w1", Stamp: validStamp(), Comment: "loved it"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, regularUser, uc.LastPrincipal)
	assert.Equal(t, "w1", uc.LastWorkshopID)
	require.NotNil(t, uc.LastStamp)
	assert.Equal(t, entity.Stamp{CircleColor: "#ff00aa", CircleFont: "mono", CircleText: "glitch"}, *uc.LastStamp)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "#ff00aa", resp["circle_color"])
	assert.Equal(t, "loved it", resp["comment"])
}

func TestCreateReview_StampBinding(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		want    string
	}{
		{"missing stamp", map[string]interface{}{"workshop_id": "w1"}, "CircleColor"},
		{"missing font", map[string]interface{}{
			"workshop_id": "w1",
			"stamp":       map[string]string{"circle_color": "#fff", "circle_text": "hi"},
		}, "CircleFont"},
		{"text too long", map[string]interface{}{
			"workshop_id": "w1",
			"stamp": map[string]string{
				"circle_color": "#fff",
				"circle_font":  "mono",
				"circle_text":  "this circle text is far longer than forty characters",
			},
		}, "CircleText"},
		{"missing workshop", map[string]interface{}{"stamp": validStamp()}, "WorkshopID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mocks.NewMockReviewUseCase()
			r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

			w := doJSON(r, http.MethodPost, "/reviews", tt.payload)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
			assert.Nil(t, uc.LastStamp)
		})
	}
}

func TestCreateReview_Errors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{domainerrors.ErrNotPastYet, http.StatusBadRequest},
		{domainerrors.ErrDuplicateReview, http.StatusBadRequest},
		{domainerrors.ErrNotRegistered, http.StatusBadRequest},
		{domainerrors.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := mocks.NewMockReviewUseCase()
			uc.Err = tt.err
			r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

			w := doJSON(r, http.MethodPost, "/reviews", dto.CreateReviewRequest{WorkshopID: "w1", Stamp: validStamp()})

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
		})
	}
}

func TestUpdateReview_PartialStamp(t *testing.T) {
	uc := mocks.NewMockReviewUseCase()
	uc.Reviews = []*entity.Review{{ID: "r1", UserID: "user-1", WorkshopID: "w1"}}
	r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

	w := doJSON(r, http.MethodPut, "/reviews/r1", map[string]string{"comment": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, uc.LastStamp)
	require.NotNil(t, uc.LastComment)
	assert.Equal(t, "edited", *uc.LastComment)

	stamp := validStamp()
	w = doJSON(r, http.MethodPut, "/reviews/r1", dto.UpdateReviewRequest{Stamp: &stamp})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.LastStamp)
	assert.Equal(t, "glitch", uc.LastStamp.CircleText)
	assert.Nil(t, uc.LastComment)
}

func TestFeatureReview(t *testing.T) {
	uc := mocks.NewMockReviewUseCase()
	uc.Reviews = []*entity.Review{{ID: "r1", UserID: "user-1", WorkshopID: "w1"}}
	r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), instructor)

	w := doJSON(r, http.MethodPut, "/reviews/feature", map[string]interface{}{"review_id": "r1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Featured")
	assert.Nil(t, uc.LastFeatured)

	w = doJSON(r, http.MethodPut, "/reviews/feature", map[string]interface{}{"review_id": "r1", "featured": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.LastFeatured)
	assert.False(t, *uc.LastFeatured)

	w = doJSON(r, http.MethodPut, "/reviews/feature", map[string]interface{}{"review_id": "r1", "featured": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *uc.LastFeatured)
	assert.Equal(t, instructor, uc.LastPrincipal)
	assert.Contains(t, w.Body.String(), `"featured":true`)
}

func TestFeatureReview_UnknownReview(t *testing.T) {
	r := setupReviewRouter(handler.NewReviewHandler(mocks.NewMockReviewUseCase(), nopLogger{}), instructor)

	w := doJSON(r, http.MethodPut, "/reviews/feature", map[string]interface{}{"review_id": "missing", "featured": true})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckReview(t *testing.T) {
	uc := mocks.NewMockReviewUseCase()
	r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

	w := doJSON(r, http.MethodGet, "/reviews/check", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "workshopId is required")

	w = doJSON(r, http.MethodGet, "/reviews/check?workshopId=w1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"has_reviewed":false}`, w.Body.String())
	assert.Equal(t, "w1", uc.LastWorkshopID)

	uc.Checked = &entity.Review{ID: "r1", UserID: "user-1", WorkshopID: "w1"}
	w = doJSON(r, http.MethodGet, "/reviews/check?workshopId=w1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ReviewCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.HasReviewed)
	require.NotNil(t, resp.Review)
	assert.Equal(t, "r1", resp.Review.ID)
}

func TestGetWorkshopReviews(t *testing.T) {
	uc := mocks.NewMockReviewUseCase()
	r := setupReviewRouter(handler.NewReviewHandler(uc, nopLogger{}), regularUser)

	w := doJSON(r, http.MethodGet, "/reviews", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/reviews?workshopId=w1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "w1", uc.LastWorkshopID)
}
