package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// transcodableExts are the container suffixes that trigger a transcode job.
// Classification is by filename suffix only; the worker re-validates the
// actual container when it opens the file.
var transcodableExts = map[string]bool{".mp4": true, ".mov": true, ".webm": true}

// MediaService is the single writer of MediaAsset rows. It turns a completed
// upload into a durable asset record attached to a review.
type MediaService struct {
	db        *gorm.DB
	cfg       *config.Config
	store     ObjectStore
	transcode *TranscodeService
	log       *zap.Logger
}

func NewMediaService(db *gorm.DB, cfg *config.Config, store ObjectStore, transcode *TranscodeService, log *zap.Logger) *MediaService {
	return &MediaService{db: db, cfg: cfg, store: store, transcode: transcode, log: log}
}

// RegisterAsset persists a MediaAsset for a completed upload. The review must
// belong to the tenant; a guessed review id from another tenant is a plain
// not-found, never a hint that the id exists. Object existence is trusted
// from the caller's successful completion call and not re-verified.
func (s *MediaService) RegisterAsset(ctx context.Context, businessID, reviewID uuid.UUID, storageKey string, assetType models.AssetType, metadata string) (*models.MediaAsset, error) {
	if storageKey == "" {
		return nil, apperrors.Validation("storageKey is required")
	}
	if assetType == "" {
		assetType = models.AssetTypeOriginal
	}

	var review models.Review
	if err := s.db.First(&review, "id = ? AND business_id = ?", reviewID, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Inconsistent("could not load review", err)
	}

	asset := &models.MediaAsset{
		BusinessID: businessID,
		ReviewID:   review.ID,
		AssetType:  assetType,
		StorageKey: storageKey,
		Metadata:   metadata,
	}

	// Size backfill is best-effort: a failed HEAD leaves SizeBytes null,
	// which understates usage until reconciliation fills it in.
	if size, err := s.store.HeadObjectSize(ctx, storageKey); err == nil {
		asset.SizeBytes = &size
	} else {
		s.log.Warn("could not read object size after completion",
			zap.String("storage_key", storageKey), zap.Error(err))
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Inconsistent("could not create asset record", err)
	}

	s.log.Info("asset registered",
		zap.String("asset_id", asset.ID.String()),
		zap.String("business_id", businessID.String()),
		zap.String("storage_key", storageKey))
	return asset, nil
}

// MaybeEnqueueTranscode creates a queued transcode job with the default
// target profile when the storage key carries a recognized video container
// suffix. Returns nil without error for everything else.
func (s *MediaService) MaybeEnqueueTranscode(ctx context.Context, asset *models.MediaAsset, review *models.Review) (*models.TranscodeJob, error) {
	if !IsTranscodableKey(asset.StorageKey) {
		return nil, nil
	}
	return s.transcode.Create(ctx, asset.BusinessID, review.ID, asset.ID, s.cfg.TranscodeDefaultProfile)
}

// IsTranscodableKey reports whether a storage key's suffix names a video
// container worth transcoding
func IsTranscodableKey(storageKey string) bool {
	return transcodableExts[strings.ToLower(filepath.Ext(storageKey))]
}

// GetAsset loads a tenant's asset by id
func (s *MediaService) GetAsset(businessID, assetID uuid.UUID) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := s.db.First(&asset, "id = ? AND business_id = ?", assetID, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("asset not found")
		}
		return nil, apperrors.Inconsistent("could not load asset", err)
	}
	return &asset, nil
}

// UpdateAssetMetadata enriches an asset record after creation. Only the
// metadata blob and duration are mutable; everything else is append-once.
func (s *MediaService) UpdateAssetMetadata(businessID, assetID uuid.UUID, metadata string, durationSeconds *float64) (*models.MediaAsset, error) {
	asset, err := s.GetAsset(businessID, assetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if metadata != "" {
		updates["metadata"] = metadata
	}
	if durationSeconds != nil {
		updates["duration_seconds"] = *durationSeconds
	}
	if len(updates) == 0 {
		return asset, nil
	}
	if err := s.db.Model(asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Inconsistent("could not update asset metadata", err)
	}
	return asset, nil
}

// PresignAssetGet returns a time-limited playback URL for a stored asset
func (s *MediaService) PresignAssetGet(ctx context.Context, businessID, assetID uuid.UUID) (string, error) {
	asset, err := s.GetAsset(businessID, assetID)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, asset.StorageKey, s.cfg.UploadGetURLTTL)
	if err != nil {
		return "", apperrors.Upstream("could not presign asset download", err)
	}
	return url, nil
}

// DeleteAsset soft-deletes the record and requests object deletion from the
// store (compliance erasure). The store delete goes first so a crash between
// the two leaves a dangling row, never an unreferenced object.
func (s *MediaService) DeleteAsset(ctx context.Context, businessID, assetID uuid.UUID) error {
	asset, err := s.GetAsset(businessID, assetID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteObject(ctx, asset.StorageKey); err != nil {
		s.log.Warn("object delete failed during erasure, continuing",
			zap.String("storage_key", asset.StorageKey), zap.Error(err))
	}

	if err := s.db.Delete(asset).Error; err != nil {
		return apperrors.Inconsistent("could not delete asset record", err)
	}

	s.log.Info("asset erased",
		zap.String("asset_id", assetID.String()),
		zap.String("business_id", businessID.String()))
	return nil
}
