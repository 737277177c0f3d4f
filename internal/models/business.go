package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the tenant. Every other entity is scoped to exactly one business.
type Business struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug string    `gorm:"size:64;uniqueIndex" json:"slug"`
	Name string    `gorm:"size:255" json:"name"`
	Plan string    `gorm:"size:32;default:free" json:"plan"` // billing tier: free | starter | pro

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
