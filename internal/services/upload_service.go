package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/config"
	"github.com/vouchly/backend/pkg/apperrors"
	"github.com/vouchly/backend/pkg/validation"
	"go.uber.org/zap"
)

// UploadService owns the multipart-upload lifecycle on behalf of a tenant.
// It never buffers payload bytes: clients PUT parts straight to the object
// store via pre-signed URLs, and this service only brokers the protocol.
type UploadService struct {
	store ObjectStore
	cfg   *config.Config
	log   *zap.Logger
}

func NewUploadService(store ObjectStore, cfg *config.Config, log *zap.Logger) *UploadService {
	return &UploadService{store: store, cfg: cfg, log: log}
}

// UploadSession is what a client needs to start PUTing parts
type UploadSession struct {
	StorageKey   string `json:"storageKey"`
	SessionToken string `json:"sessionToken"`
}

// PartInput is one client-reported part at completion time
type PartInput struct {
	PartNumber  int    `json:"partNumber"`
	ChecksumTag string `json:"checksumTag"`
}

// BeginSession initiates a multipart upload under a tenant-scoped key.
// Key format: {tenantID}/reviews/originals/{unixMillis}-{sanitizedFilename}.
func (s *UploadService) BeginSession(ctx context.Context, businessID uuid.UUID, filename, contentType string, totalSize int64) (*UploadSession, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, apperrors.Validation("filename is required")
	}
	if strings.TrimSpace(contentType) == "" {
		return nil, apperrors.Validation("contentType is required")
	}
	if totalSize < 0 {
		return nil, apperrors.Validation("totalSize must not be negative")
	}
	if totalSize > 0 && totalSize > s.cfg.UploadMaxTotalSize {
		return nil, apperrors.Validation(fmt.Sprintf("totalSize exceeds the maximum of %d bytes", s.cfg.UploadMaxTotalSize))
	}

	key := fmt.Sprintf("%s/reviews/originals/%d-%s",
		businessID, time.Now().UnixMilli(), validation.SanitizeFilename(filename))

	uploadID, err := s.store.CreateMultipartUpload(ctx, key, contentType)
	if err != nil {
		return nil, apperrors.Upstream("could not start upload session", err)
	}

	s.log.Info("multipart session started",
		zap.String("business_id", businessID.String()),
		zap.String("storage_key", key))
	return &UploadSession{StorageKey: key, SessionToken: uploadID}, nil
}

// PresignPart returns a time-limited URL the client PUTs one part to.
// Parts are 1-indexed; the store validates the session token, not us.
func (s *UploadService) PresignPart(ctx context.Context, storageKey, sessionToken string, partNumber int) (string, error) {
	if storageKey == "" || sessionToken == "" {
		return "", apperrors.Validation("storageKey and sessionToken are required")
	}
	if !validation.ValidatePartNumber(partNumber) {
		return "", apperrors.Validation("partNumber must be between 1 and 10000")
	}

	url, err := s.store.PresignUploadPart(ctx, storageKey, sessionToken, int32(partNumber), s.cfg.UploadPartURLTTL)
	if err != nil {
		return "", s.mapStoreError("could not presign upload part", err)
	}
	return url, nil
}

// CompleteSession finalizes the multipart upload. A success return is the
// durability boundary: the object is retrievable at storageKey from then on.
func (s *UploadService) CompleteSession(ctx context.Context, storageKey, sessionToken string, parts []PartInput) (string, error) {
	if storageKey == "" || sessionToken == "" {
		return "", apperrors.Validation("storageKey and sessionToken are required")
	}
	if len(parts) == 0 {
		return "", apperrors.Validation("at least one part is required")
	}
	completed := make([]CompletedPart, 0, len(parts))
	for _, p := range parts {
		if !validation.ValidatePartNumber(p.PartNumber) {
			return "", apperrors.Validation("partNumber must be between 1 and 10000")
		}
		if p.ChecksumTag == "" {
			return "", apperrors.Validation("each part needs its checksumTag")
		}
		completed = append(completed, CompletedPart{PartNumber: int32(p.PartNumber), ChecksumTag: p.ChecksumTag})
	}

	location, err := s.store.CompleteMultipartUpload(ctx, storageKey, sessionToken, completed)
	if err != nil {
		return "", s.mapStoreError("could not complete upload", err)
	}

	s.log.Info("multipart session completed", zap.String("storage_key", storageKey))
	return location, nil
}

// AbortSession releases server-side resources for a session that will never
// complete. Aborting an already-gone session is not an error.
func (s *UploadService) AbortSession(ctx context.Context, storageKey, sessionToken string) error {
	if storageKey == "" || sessionToken == "" {
		return apperrors.Validation("storageKey and sessionToken are required")
	}
	if err := s.store.AbortMultipartUpload(ctx, storageKey, sessionToken); err != nil {
		if isStoreErrorCode(err, "NoSuchUpload") {
			return nil
		}
		return apperrors.Upstream("could not abort upload session", err)
	}
	return nil
}

// ReapStaleSessions aborts in-progress multipart sessions initiated longer
// than olderThan ago. Clients that vanish mid-upload otherwise leave the
// session open at the store indefinitely.
func (s *UploadService) ReapStaleSessions(ctx context.Context, olderThan time.Duration) (int, error) {
	uploads, err := s.store.ListMultipartUploads(ctx, "")
	if err != nil {
		return 0, apperrors.Upstream("could not list multipart uploads", err)
	}

	cutoff := time.Now().Add(-olderThan)
	reaped := 0
	for _, u := range uploads {
		if u.Initiated.IsZero() || !u.Initiated.Before(cutoff) {
			continue
		}
		if err := s.store.AbortMultipartUpload(ctx, u.Key, u.UploadID); err != nil {
			s.log.Warn("failed to abort stale upload",
				zap.String("storage_key", u.Key), zap.Error(err))
			continue
		}
		reaped++
	}
	return reaped, nil
}

// mapStoreError translates S3 API error codes onto the service taxonomy.
// A stale or unknown upload id surfaces as not_found; part mismatches the
// client can fix surface as validation; everything else is upstream.
func (s *UploadService) mapStoreError(message string, err error) error {
	if isStoreErrorCode(err, "NoSuchUpload") {
		return apperrors.NotFound("upload session is unknown or expired")
	}
	if isStoreErrorCode(err, "InvalidPart", "InvalidPartOrder", "EntityTooSmall") {
		return apperrors.Validation("upload parts are missing or mismatched")
	}
	return apperrors.Upstream(message, err)
}

func isStoreErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
