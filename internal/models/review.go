package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
	ReviewStatusHidden   ReviewStatus = "hidden"
)

type ReviewType string

const (
	ReviewTypeText   ReviewType = "text"
	ReviewTypeVideo  ReviewType = "video"
	ReviewTypeAudio  ReviewType = "audio"
	ReviewTypeImport ReviewType = "import"
)

// Review represents one testimonial submission. It exists before any media
// upload completes; a valid review id is the precondition for attaching assets.
type Review struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID    `gorm:"type:uuid;index;not null" json:"business_id"`
	Status     ReviewStatus `gorm:"size:16;default:pending" json:"status"`
	Type       ReviewType   `gorm:"size:16;default:text" json:"type"`

	ReviewerName  string `gorm:"size:255" json:"reviewer_name"`
	ReviewerEmail string `gorm:"size:255" json:"reviewer_email"`
	Rating        int    `json:"rating"`
	Body          string `gorm:"type:text" json:"body"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
