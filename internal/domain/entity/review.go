package entity

import (
	"time"
)

// Review is a stamped review left by a user for a past workshop.
type Review struct {
	ID           string `bson:"_id,omitempty" json:"id"`
	UserID       string `bson:"user" json:"user"`
	WorkshopID   string `bson:"workshop" json:"workshop"`
	AuthorName   string `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Stamp        `bson:",inline"`
	Comment      string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Featured     bool      `bson:"featured" json:"featured"`
	WorkshopName string    `bson:"workshop_name,omitempty" json:"workshop_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Stamp is the circular visual customization of a review.
type Stamp struct {
	CircleColor string `bson:"circle_color" json:"circle_color"`
	CircleFont  string `bson:"circle_font" json:"circle_font"`
	CircleText  string `bson:"circle_text" json:"circle_text"`
}

// IsOwnedBy reports whether userID authored the review.
func (r *Review) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}
