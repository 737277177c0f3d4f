package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranscodeStatus string

const (
	TranscodeStatusQueued     TranscodeStatus = "queued"
	TranscodeStatusProcessing TranscodeStatus = "processing"
	TranscodeStatusDone       TranscodeStatus = "done"
	TranscodeStatusError      TranscodeStatus = "error"
)

// TranscodeJob records the intent to convert an input asset to a target
// profile. Execution happens in an external worker that reports back via
// status updates; no encoding runs in this service.
type TranscodeJob struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BusinessID   uuid.UUID `gorm:"type:uuid;index;not null" json:"business_id"`
	ReviewID     uuid.UUID `gorm:"type:uuid;index;not null" json:"review_id"`
	InputAssetID uuid.UUID `gorm:"type:uuid;index;not null" json:"input_asset_id"`

	TargetProfile string          `gorm:"size:128" json:"target_profile"`
	Status        TranscodeStatus `gorm:"size:16;default:queued" json:"status"`
	ErrorMessage  *string         `gorm:"size:1024" json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *TranscodeJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
