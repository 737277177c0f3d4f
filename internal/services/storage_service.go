package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// StorageUsage is a derived per-tenant aggregate, recomputed on every call
// and never persisted. Assets with a null size contribute zero bytes, so
// BytesUsed understates usage until sizes are backfilled.
type StorageUsage struct {
	BytesUsed   int64 `json:"bytesUsed"`
	MediaCount  int64 `json:"mediaCount"`
	ReviewCount int64 `json:"reviewCount"`
}

// StorageQuota pairs the computed usage with the plan limit supplied by the
// quota policy. This layer only reports; nothing here blocks an upload.
type StorageQuota struct {
	StorageUsage
	BytesLimit int64 `json:"bytesLimit"`
}

// StorageService reports per-tenant storage consumption
type StorageService struct {
	db    *gorm.DB
	quota *QuotaService
}

func NewStorageService(db *gorm.DB, quota *QuotaService) *StorageService {
	return &StorageService{db: db, quota: quota}
}

// GetUsage computes the current usage snapshot for a tenant. A tenant with
// no rows gets an all-zero snapshot, not an error.
func (s *StorageService) GetUsage(businessID uuid.UUID) (*StorageUsage, error) {
	usage := &StorageUsage{}

	err := s.db.Model(&models.MediaAsset{}).
		Where("business_id = ?", businessID).
		Select("COALESCE(SUM(COALESCE(size_bytes, 0)), 0)").
		Scan(&usage.BytesUsed).Error
	if err != nil {
		return nil, apperrors.Inconsistent("could not sum asset sizes", err)
	}

	if err := s.db.Model(&models.MediaAsset{}).
		Where("business_id = ?", businessID).
		Count(&usage.MediaCount).Error; err != nil {
		return nil, apperrors.Inconsistent("could not count assets", err)
	}

	// Reviews count independently of media: a text review with no asset
	// still counts toward the tenant's total.
	if err := s.db.Model(&models.Review{}).
		Where("business_id = ?", businessID).
		Count(&usage.ReviewCount).Error; err != nil {
		return nil, apperrors.Inconsistent("could not count reviews", err)
	}

	return usage, nil
}

// GetQuota returns usage together with the tenant's plan limit
func (s *StorageService) GetQuota(ctx context.Context, business *models.Business) (*StorageQuota, error) {
	usage, err := s.GetUsage(business.ID)
	if err != nil {
		return nil, err
	}
	limit := s.quota.LimitBytes(ctx, business)
	return &StorageQuota{StorageUsage: *usage, BytesLimit: limit}, nil
}
