package entity

import (
	"time"
)

// WorkshopStatus is derived from the dates and the canceled flag; it is never stored.
type WorkshopStatus string

const (
	WorkshopStatusFuture   WorkshopStatus = "future"
	WorkshopStatusOngoing  WorkshopStatus = "ongoing"
	WorkshopStatusPast     WorkshopStatus = "past"
	WorkshopStatusCanceled WorkshopStatus = "canceled"
)

// DeriveStatus computes the status of a workshop at the given instant.
func DeriveStatus(start, end time.Time, canceled bool, now time.Time) WorkshopStatus {
	switch {
	case canceled:
		return WorkshopStatusCanceled
	case now.Before(start):
		return WorkshopStatusFuture
	case !now.After(end):
		return WorkshopStatusOngoing
	default:
		return WorkshopStatusPast
	}
}

// ParseWorkshopStatus returns false for anything that is not one of the four statuses.
func ParseWorkshopStatus(s string) (WorkshopStatus, bool) {
	switch WorkshopStatus(s) {
	case WorkshopStatusFuture, WorkshopStatusOngoing, WorkshopStatusPast, WorkshopStatusCanceled:
		return WorkshopStatus(s), true
	}
	return "", false
}

// Workshop is a bookable session run by one or more instructors.
type Workshop struct {
	ID              string                           `bson:"_id,omitempty" json:"id"`
	Name            string                           `bson:"name" json:"name"`
	Description     string                           `bson:"description" json:"description"`
	Translations    map[Language]WorkshopTranslation `bson:"translations,omitempty" json:"translations,omitempty"`
	StartDate       time.Time                        `bson:"start_date" json:"start_date"`
	EndDate         time.Time                        `bson:"end_date" json:"end_date"`
	Location        string                           `bson:"location" json:"location"`
	Capacity        int                              `bson:"capacity" json:"capacity"`
	RegisteredCount int                              `bson:"registered_count" json:"registered_count"`
	Categories      WorkshopCategories               `bson:"categories" json:"categories"`
	InstructorIDs   []string                         `bson:"instructor_ids" json:"instructor_ids"`
	BadgeName       string                           `bson:"badge_name" json:"badge_name"`
	BadgeImage      string                           `bson:"badge_image,omitempty" json:"badge_image,omitempty"`
	BgColor         string                           `bson:"bg_color,omitempty" json:"bg_color,omitempty"`
	Canceled        bool                             `bson:"canceled" json:"canceled"`
	ReminderSent    bool                             `bson:"reminder_sent" json:"reminder_sent"`
	CreatedAt       time.Time                        `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time                        `bson:"updated_at" json:"updated_at"`
}

// WorkshopTranslation carries the localized copy of a workshop.
type WorkshopTranslation struct {
	Name        string `bson:"name,omitempty" json:"name,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	BadgeName   string `bson:"badge_name,omitempty" json:"badge_name,omitempty"`
}

// Status derives the workshop status at now.
func (w *Workshop) Status(now time.Time) WorkshopStatus {
	return DeriveStatus(w.StartDate, w.EndDate, w.Canceled, now)
}

// IsFull reports whether registeredCount has reached capacity.
func (w *Workshop) IsFull() bool {
	return w.RegisteredCount >= w.Capacity
}

// HasInstructor reports whether userID is one of the workshop's instructors.
func (w *Workshop) HasInstructor(userID string) bool {
	for _, id := range w.InstructorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LocalizedName picks the name for a locale, falling back to the base name.
func (w *Workshop) LocalizedName(lang Language) string {
	if t, ok := w.Translations[lang]; ok && t.Name != "" {
		return t.Name
	}
	return w.Name
}

// LocalizedBadgeName picks the badge name for a locale, falling back to the base badge name.
func (w *Workshop) LocalizedBadgeName(lang Language) string {
	if t, ok := w.Translations[lang]; ok && t.BadgeName != "" {
		return t.BadgeName
	}
	if w.BadgeName != "" {
		return w.BadgeName
	}
	return w.LocalizedName(lang)
}

// DisplayName is the denormalized name stored on featured reviews.
func (w *Workshop) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	for _, lang := range []Language{LanguageIT, LanguageEN} {
		if t, ok := w.Translations[lang]; ok && t.Name != "" {
			return t.Name
		}
	}
	return UnknownWorkshopName
}

// UnknownWorkshopName is used when a workshop has no name in any locale.
const UnknownWorkshopName = "Unknown Workshop"
