package services

import (
	"context"
	"time"
)

// CompletedPart identifies one uploaded part at completion time.
// ChecksumTag is the ETag the store returned for the part PUT.
type CompletedPart struct {
	PartNumber  int32
	ChecksumTag string
}

// MultipartUploadInfo describes one in-progress multipart session
type MultipartUploadInfo struct {
	Key       string
	UploadID  string
	Initiated time.Time
}

// ObjectStore is the blob-store protocol the upload pipeline consumes.
// Services depend on this interface so tests can substitute a fake.
type ObjectStore interface {
	CreateMultipartUpload(ctx context.Context, key, contentType string) (uploadID string, err error)
	PresignUploadPart(ctx context.Context, key, uploadID string, partNumber int32, ttl time.Duration) (string, error)
	CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts []CompletedPart) (location string, err error)
	AbortMultipartUpload(ctx context.Context, key, uploadID string) error
	ListMultipartUploads(ctx context.Context, prefix string) ([]MultipartUploadInfo, error)
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	HeadObjectSize(ctx context.Context, key string) (int64, error)
	DeleteObject(ctx context.Context, key string) error
}
