package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newMediaService(t *testing.T, db *gorm.DB, store ObjectStore) *MediaService {
	t.Helper()
	cfg := config.New()
	transcode := NewTranscodeService(db, zap.NewNop())
	return NewMediaService(db, cfg, store, transcode, zap.NewNop())
}

func TestRegisterAssetHappyPath(t *testing.T) {
	db := newTestDB(t)
	store := newFakeObjectStore()
	store.objectSizes["key-1"] = 2_500_000
	svc := newMediaService(t, db, store)

	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	asset, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "key-1", models.AssetTypeOriginal, "")
	require.NoError(t, err)
	assert.Equal(t, business.ID, asset.BusinessID)
	assert.Equal(t, review.ID, asset.ReviewID)
	require.NotNil(t, asset.SizeBytes)
	assert.EqualValues(t, 2_500_000, *asset.SizeBytes)
}

func TestRegisterAssetRejectsForeignReview(t *testing.T) {
	db := newTestDB(t)
	svc := newMediaService(t, db, newFakeObjectStore())

	owner := seedBusiness(t, db, "owner", "free")
	attacker := seedBusiness(t, db, "attacker", "free")
	review := seedReview(t, db, owner.ID, models.ReviewTypeVideo)

	// a guessed review id from another tenant looks exactly like a missing one
	_, err := svc.RegisterAsset(context.Background(), attacker.ID, review.ID, "key-x", models.AssetTypeOriginal, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.From(err).Category)
}

func TestRegisterAssetUnknownReview(t *testing.T) {
	db := newTestDB(t)
	svc := newMediaService(t, db, newFakeObjectStore())
	business := seedBusiness(t, db, "acme", "free")

	_, err := svc.RegisterAsset(context.Background(), business.ID, uuid.New(), "key-x", models.AssetTypeOriginal, "")
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.From(err).Category)
}

func TestRegisterAssetSameKeyTwiceMakesTwoRows(t *testing.T) {
	db := newTestDB(t)
	svc := newMediaService(t, db, newFakeObjectStore())
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	a1, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "same-key", models.AssetTypeOriginal, "")
	require.NoError(t, err)
	a2, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "same-key", models.AssetTypeOriginal, "")
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)

	var count int64
	require.NoError(t, db.Model(&models.MediaAsset{}).Where("storage_key = ?", "same-key").Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestRegisterAssetSizeStaysNullWhenHeadFails(t *testing.T) {
	db := newTestDB(t)
	store := newFakeObjectStore()
	store.headErr = errors.New("head refused")
	svc := newMediaService(t, db, store)
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	asset, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "key-1", models.AssetTypeOriginal, "")
	require.NoError(t, err)
	assert.Nil(t, asset.SizeBytes)
}

func TestMaybeEnqueueTranscodeByExtension(t *testing.T) {
	db := newTestDB(t)
	svc := newMediaService(t, db, newFakeObjectStore())
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	cases := []struct {
		key      string
		wantsJob bool
	}{
		{"t/reviews/originals/1-clip.mp4", true},
		{"t/reviews/originals/2-clip.mov", true},
		{"t/reviews/originals/3-clip.webm", true},
		{"t/reviews/originals/4-clip.MOV", true},
		{"t/reviews/originals/5-voice.mp3", false},
		{"t/reviews/originals/6-readme.txt", false},
		{"t/reviews/originals/7-noext", false},
	}
	for _, tc := range cases {
		asset, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, tc.key, models.AssetTypeOriginal, "")
		require.NoError(t, err)

		job, err := svc.MaybeEnqueueTranscode(context.Background(), asset, review)
		require.NoError(t, err, "key %q", tc.key)
		if tc.wantsJob {
			require.NotNil(t, job, "key %q", tc.key)
			assert.Equal(t, models.TranscodeStatusQueued, job.Status)
			assert.Equal(t, asset.ID, job.InputAssetID)
			assert.Equal(t, "720p_h264_1Mbps", job.TargetProfile)
		} else {
			assert.Nil(t, job, "key %q", tc.key)
		}
	}
}

func TestDeleteAssetErasesObjectAndSoftDeletesRow(t *testing.T) {
	db := newTestDB(t)
	store := newFakeObjectStore()
	svc := newMediaService(t, db, store)
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	asset, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "key-del", models.AssetTypeOriginal, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAsset(context.Background(), business.ID, asset.ID))
	assert.Contains(t, store.deleted, "key-del")

	// default scope no longer sees the row
	_, err = svc.GetAsset(business.ID, asset.ID)
	assert.Equal(t, apperrors.CategoryNotFound, apperrors.From(err).Category)

	// but the row survives for compliance audit
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.MediaAsset{}).Where("id = ?", asset.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateAssetMetadata(t *testing.T) {
	db := newTestDB(t)
	svc := newMediaService(t, db, newFakeObjectStore())
	business := seedBusiness(t, db, "acme", "free")
	review := seedReview(t, db, business.ID, models.ReviewTypeVideo)

	asset, err := svc.RegisterAsset(context.Background(), business.ID, review.ID, "key-1", models.AssetTypeOriginal, "")
	require.NoError(t, err)

	duration := 12.5
	_, err = svc.UpdateAssetMetadata(business.ID, asset.ID, `{"codec":"h264"}`, &duration)
	require.NoError(t, err)

	reloaded, err := svc.GetAsset(business.ID, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"codec":"h264"}`, reloaded.Metadata)
	require.NotNil(t, reloaded.DurationSeconds)
	assert.Equal(t, 12.5, *reloaded.DurationSeconds)
}
