package dto

import (
	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
)

type StampRequest struct {
	CircleColor string `json:"circle_color" binding:"required"`
	CircleFont  string `json:"circle_font" binding:"required"`
	CircleText  string `json:"circle_text" binding:"required,max=40"`
}

func (s StampRequest) ToStamp() entity.Stamp {
	return entity.Stamp{CircleColor: s.CircleColor, CircleFont: s.CircleFont, CircleText: s.CircleText}
}

type CreateReviewRequest struct {
	WorkshopID string       `json:"workshop_id" binding:"required"`
	Stamp      StampRequest `json:"stamp" binding:"required"`
	Comment    string       `json:"comment" binding:"max=2000"`
}

type UpdateReviewRequest struct {
	Stamp   *StampRequest `json:"stamp"`
	Comment *string       `json:"comment" binding:"omitempty,max=2000"`
}

type FeatureReviewRequest struct {
	ReviewID string `json:"review_id" binding:"required"`
	Featured *bool  `json:"featured" binding:"required"`
}
