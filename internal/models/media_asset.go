package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetType string

const (
	AssetTypeOriginal  AssetType = "original"
	AssetTypeVideo     AssetType = "video"
	AssetTypeAudio     AssetType = "audio"
	AssetTypeThumbnail AssetType = "thumbnail"
)

// MediaAsset is a durable reference to an uploaded object. A row is only
// created after the object store has acknowledged the multipart completion,
// so StorageKey always points at an existing object at creation time.
type MediaAsset struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"business_id"`
	ReviewID   uuid.UUID `gorm:"type:uuid;index;not null" json:"review_id"`
	AssetType  AssetType `gorm:"size:16;default:original" json:"asset_type"`

	StorageKey      string   `gorm:"size:512;index" json:"storage_key"`
	SizeBytes       *int64   `json:"size_bytes,omitempty"`       // nullable until backfilled
	DurationSeconds *float64 `json:"duration_seconds,omitempty"` // nullable until probed
	Metadata        string   `gorm:"type:text" json:"metadata"`  // free-form JSON blob

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // compliance erasure keeps the row
}

func (a *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
