package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TranscodeService records and advances transcode intent. The encoder runs
// elsewhere; workers pull queued jobs and push status back through SetStatus.
type TranscodeService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTranscodeService(db *gorm.DB, log *zap.Logger) *TranscodeService {
	return &TranscodeService{db: db, log: log}
}

var validTranscodeStatuses = map[models.TranscodeStatus]bool{
	models.TranscodeStatusQueued:     true,
	models.TranscodeStatusProcessing: true,
	models.TranscodeStatusDone:       true,
	models.TranscodeStatusError:      true,
}

// Create records a queued job for an existing input asset. The target
// profile is an opaque string; profile validation belongs to the worker.
func (s *TranscodeService) Create(ctx context.Context, businessID, reviewID, inputAssetID uuid.UUID, target string) (*models.TranscodeJob, error) {
	var asset models.MediaAsset
	if err := s.db.First(&asset, "id = ? AND business_id = ?", inputAssetID, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Inconsistent("input asset does not exist", err)
		}
		return nil, apperrors.Inconsistent("could not load input asset", err)
	}

	job := &models.TranscodeJob{
		BusinessID:    businessID,
		ReviewID:      reviewID,
		InputAssetID:  inputAssetID,
		TargetProfile: target,
		Status:        models.TranscodeStatusQueued,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, apperrors.Inconsistent("could not create transcode job", err)
	}

	s.log.Info("transcode job queued",
		zap.String("job_id", job.ID.String()),
		zap.String("input_asset_id", inputAssetID.String()),
		zap.String("target_profile", target))
	return job, nil
}

// SetStatus overwrites a job's status and error message. Last write wins;
// concurrent updates for the same job are not serialized.
func (s *TranscodeService) SetStatus(jobID uuid.UUID, status models.TranscodeStatus, errorMessage *string) (*models.TranscodeJob, error) {
	if !validTranscodeStatuses[status] {
		return nil, apperrors.Validation("unknown transcode status")
	}

	var job models.TranscodeJob
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("transcode job not found")
		}
		return nil, apperrors.Inconsistent("could not load transcode job", err)
	}

	updates := map[string]interface{}{
		"status":        status,
		"error_message": errorMessage,
	}
	if err := s.db.Model(&job).Updates(updates).Error; err != nil {
		return nil, apperrors.Inconsistent("could not update transcode job", err)
	}

	job.Status = status
	job.ErrorMessage = errorMessage
	return &job, nil
}

// GetJob loads a job by id
func (s *TranscodeService) GetJob(jobID uuid.UUID) (*models.TranscodeJob, error) {
	var job models.TranscodeJob
	if err := s.db.First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("transcode job not found")
		}
		return nil, apperrors.Inconsistent("could not load transcode job", err)
	}
	return &job, nil
}

// ListByStatus returns the oldest jobs in a given status, for worker pulls
func (s *TranscodeService) ListByStatus(status models.TranscodeStatus, limit int) ([]models.TranscodeJob, error) {
	if !validTranscodeStatuses[status] {
		return nil, apperrors.Validation("unknown transcode status")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var jobs []models.TranscodeJob
	if err := s.db.Where("status = ?", status).Order("created_at ASC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, apperrors.Inconsistent("could not list transcode jobs", err)
	}
	return jobs, nil
}
