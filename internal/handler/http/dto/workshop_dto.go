package dto

import (
	"time"

	"github.com/mikiasgoitom/GlitchLab/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/GlitchLab/internal/usecase/contract"
)

// Request DTOs for workshop handlers

// TranslationRequest is the localized copy for one language.
type TranslationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BadgeName   string `json:"badge_name"`
}

// CreateWorkshopRequest defines the structure for creating a new workshop
type CreateWorkshopRequest struct {
	Name          string                        `json:"name" binding:"required"`
	Description   string                        `json:"description"`
	Translations  map[string]TranslationRequest `json:"translations" binding:"omitempty,dive,keys,emaillang,endkeys"`
	StartDate     time.Time                     `json:"start_date" binding:"required"`
	EndDate       time.Time                     `json:"end_date" binding:"required,gtefield=StartDate"`
	Location      string                        `json:"location"`
	Capacity      int                           `json:"capacity" binding:"required,min=1"`
	Categories    entity.WorkshopCategories     `json:"categories"`
	InstructorIDs []string                      `json:"instructor_ids"`
	BadgeName     string                        `json:"badge_name"`
	BadgeImage    string                        `json:"badge_image" binding:"omitempty,url"`
	BgColor       string                        `json:"bg_color" binding:"omitempty,hexcolor"`
}

func (r CreateWorkshopRequest) ToInput() usecasecontract.WorkshopInput {
	return usecasecontract.WorkshopInput{
		Name:          &r.Name,
		Description:   &r.Description,
		Translations:  toTranslations(r.Translations),
		StartDate:     &r.StartDate,
		EndDate:       &r.EndDate,
		Location:      &r.Location,
		Capacity:      &r.Capacity,
		Categories:    &r.Categories,
		InstructorIDs: r.InstructorIDs,
		BadgeName:     &r.BadgeName,
		BadgeImage:    &r.BadgeImage,
		BgColor:       &r.BgColor,
	}
}

// UpdateWorkshopRequest defines the structure for updating an existing workshop
type UpdateWorkshopRequest struct {
	Name          *string                       `json:"name"`
	Description   *string                       `json:"description"`
	Translations  map[string]TranslationRequest `json:"translations" binding:"omitempty,dive,keys,emaillang,endkeys"`
	StartDate     *time.Time                    `json:"start_date"`
	EndDate       *time.Time                    `json:"end_date"`
	Location      *string                       `json:"location"`
	Capacity      *int                          `json:"capacity" binding:"omitempty,min=1"`
	Categories    *entity.WorkshopCategories    `json:"categories"`
	InstructorIDs []string                      `json:"instructor_ids"`
	BadgeName     *string                       `json:"badge_name"`
	BadgeImage    *string                       `json:"badge_image" binding:"omitempty,url"`
	BgColor       *string                       `json:"bg_color" binding:"omitempty,hexcolor"`
}

func (r UpdateWorkshopRequest) ToInput() usecasecontract.WorkshopInput {
	return usecasecontract.WorkshopInput{
		Name:          r.Name,
		Description:   r.Description,
		Translations:  toTranslations(r.Translations),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Location:      r.Location,
		Capacity:      r.Capacity,
		Categories:    r.Categories,
		InstructorIDs: r.InstructorIDs,
		BadgeName:     r.BadgeName,
		BadgeImage:    r.BadgeImage,
		BgColor:       r.BgColor,
	}
}

func toTranslations(in map[string]TranslationRequest) map[entity.Language]entity.WorkshopTranslation {
	if in == nil {
		return nil
	}
	out := make(map[entity.Language]entity.WorkshopTranslation, len(in))
	for lang, t := range in {
		out[entity.Language(lang)] = entity.WorkshopTranslation{Name: t.Name, Description: t.Description, BadgeName: t.BadgeName}
	}
	return out
}

// WorkshopQuery binds the listing filters.
type WorkshopQuery struct {
	Status       string `form:"status" binding:"omitempty,oneof=future ongoing past canceled"`
	InstructorID string `form:"instructorId"`
	AgeRange     string `form:"ageRange" binding:"omitempty,agerange"`
	ClassType    string `form:"classType" binding:"omitempty,classtype"`
	TechType     string `form:"techType" binding:"omitempty,techtype"`
	Subject      string `form:"subject" binding:"omitempty,subject"`
}

func (q WorkshopQuery) ToFilter() usecasecontract.WorkshopFilter {
	f := usecasecontract.WorkshopFilter{
		InstructorID: q.InstructorID,
		Categories: entity.WorkshopCategories{
			AgeRange:  entity.AgeRange(q.AgeRange),
			ClassType: entity.ClassType(q.ClassType),
			TechType:  entity.TechType(q.TechType),
			Subject:   entity.Subject(q.Subject),
		},
	}
	if s, ok := entity.ParseWorkshopStatus(q.Status); ok {
		f.Status = &s
	}
	return f
}

type UncancelWorkshopRequest struct {
	WorkshopID string    `json:"workshop_id" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required,gtefield=StartDate"`
}

type WorkshopRegistrationRequest struct {
	WorkshopID string `json:"workshop_id" binding:"required"`
}

// UserWorkshopRequest names a user and a workshop; used by remove-user and badge awards.
type UserWorkshopRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	WorkshopID string `json:"workshop_id" binding:"required"`
}
