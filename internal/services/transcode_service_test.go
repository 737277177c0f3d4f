package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedTranscodeFixture(t *testing.T, db *gorm.DB) (*models.Business, *models.Review, *models.MediaAsset) {
	t.Helper()
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)
	asset := seedAsset(t, db, business, review, int64p(1024))
	return business, review, asset
}

func TestCreateJobStartsQueued(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, asset := seedTranscodeFixture(t, db)

	job, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "720p_h264_1Mbps")
	require.NoError(t, err)
	assert.Equal(t, models.TranscodeStatusQueued, job.Status)
	assert.Equal(t, asset.ID, job.InputAssetID)
	assert.Nil(t, job.ErrorMessage)
}

func TestCreateJobRequiresExistingAsset(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, _ := seedTranscodeFixture(t, db)

	_, err := svc.Create(context.Background(), business.ID, review.ID, uuid.New(), "720p_h264_1Mbps")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryInconsistent, apperrors.From(err).Category)
}

func TestCreateJobAcceptsAnyTargetString(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, asset := seedTranscodeFixture(t, db)

	// profile validation is the worker's job, not ours
	job, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "definitely-not-a-profile")
	require.NoError(t, err)
	assert.Equal(t, "definitely-not-a-profile", job.TargetProfile)
}

func TestSetStatusWritesStatusAndErrorTogether(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, asset := seedTranscodeFixture(t, db)

	job, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "720p_h264_1Mbps")
	require.NoError(t, err)

	msg := "encoder exploded"
	updated, err := svc.SetStatus(job.ID, models.TranscodeStatusError, &msg)
	require.NoError(t, err)
	assert.Equal(t, models.TranscodeStatusError, updated.Status)
	require.NotNil(t, updated.ErrorMessage)
	assert.Equal(t, msg, *updated.ErrorMessage)

	// a subsequent read observes both fields
	reloaded, err := svc.GetJob(job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TranscodeStatusError, reloaded.Status)
	require.NotNil(t, reloaded.ErrorMessage)
	assert.Equal(t, msg, *reloaded.ErrorMessage)
}

func TestSetStatusLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, asset := seedTranscodeFixture(t, db)

	job, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "720p_h264_1Mbps")
	require.NoError(t, err)

	msg := "boom"
	_, err = svc.SetStatus(job.ID, models.TranscodeStatusError, &msg)
	require.NoError(t, err)

	// no terminal-state guard: done after error overwrites, clearing the message
	updated, err := svc.SetStatus(job.ID, models.TranscodeStatusDone, nil)
	require.NoError(t, err)
	assert.Equal(t, models.TranscodeStatusDone, updated.Status)
	assert.Nil(t, updated.ErrorMessage)
}

func TestSetStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())

	_, err := svc.SetStatus(uuid.New(), "paused", nil)
	assert.Equal(t, apperrors.CategoryValidation, apperrors.From(err).Category)

	_, err = svc.SetStatus(uuid.New(), models.TranscodeStatusDone, nil)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.From(err).Category)
}

func TestListByStatusOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewTranscodeService(db, zap.NewNop())
	business, review, asset := seedTranscodeFixture(t, db)

	first, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "a")
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), business.ID, review.ID, asset.ID, "b")
	require.NoError(t, err)

	_, err = svc.SetStatus(second.ID, models.TranscodeStatusProcessing, nil)
	require.NoError(t, err)

	queued, err := svc.ListByStatus(models.TranscodeStatusQueued, 10)
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, first.ID, queued[0].ID)

	_, err = svc.ListByStatus("nope", 10)
	assert.Equal(t, apperrors.CategoryValidation, apperrors.From(err).Category)
}
