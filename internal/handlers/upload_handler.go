package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/internal/services"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
)

// UploadHandler exposes the multipart upload protocol. Clients talk to the
// object store directly for the payload bytes; these endpoints only broker
// sessions, part URLs and the final registration.
type UploadHandler struct {
	uploadService   *services.UploadService
	mediaService    *services.MediaService
	reviewService   *services.ReviewService
	businessService *services.BusinessService
	log             *zap.Logger
}

func NewUploadHandler(uploadService *services.UploadService, mediaService *services.MediaService, reviewService *services.ReviewService, businessService *services.BusinessService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService:   uploadService,
		mediaService:    mediaService,
		reviewService:   reviewService,
		businessService: businessService,
		log:             log,
	}
}

type initMultipartRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	TotalSize   int64  `json:"totalSize"`
}

// InitMultipart starts an upload session for a tenant
// POST /uploads/multipart/init/:slug
func (h *UploadHandler) InitMultipart(c *gin.Context) {
	business, err := h.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req initMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	session, err := h.uploadService.BeginSession(c.Request.Context(), business.ID, req.Filename, req.ContentType, req.TotalSize)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// PresignPart returns a pre-signed PUT URL for one part
// GET /uploads/multipart/presign?storageKey=&sessionToken=&partNumber=
func (h *UploadHandler) PresignPart(c *gin.Context) {
	storageKey := c.Query("storageKey")
	sessionToken := c.Query("sessionToken")
	partNumber, err := strconv.Atoi(c.Query("partNumber"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("partNumber must be an integer"))
		return
	}

	url, err := h.uploadService.PresignPart(c.Request.Context(), storageKey, sessionToken, partNumber)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type completeMultipartRequest struct {
	StorageKey   string               `json:"storageKey"`
	SessionToken string               `json:"sessionToken"`
	Parts        []services.PartInput `json:"parts"`
}

// CompleteMultipart finalizes the upload, registers the asset against the
// review and, for video containers, queues a transcode job
// POST /uploads/multipart/complete/:slug?reviewId=
func (h *UploadHandler) CompleteMultipart(c *gin.Context) {
	business, err := h.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	reviewID, err := uuid.Parse(c.Query("reviewId"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("reviewId must be a valid uuid"))
		return
	}

	var req completeMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	review, err := h.reviewService.Get(business.ID, reviewID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	location, err := h.uploadService.CompleteSession(c.Request.Context(), req.StorageKey, req.SessionToken, req.Parts)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	asset, err := h.mediaService.RegisterAsset(c.Request.Context(), business.ID, review.ID, req.StorageKey, models.AssetTypeOriginal, "")
	if err != nil {
		// The object is durable but unregistered now; the reconciliation
		// sweep picks it up. Report the failure so the client can retry.
		respondError(c, h.log, err)
		return
	}

	if _, err := h.mediaService.MaybeEnqueueTranscode(c.Request.Context(), asset, review); err != nil {
		h.log.Error("transcode enqueue failed after registration",
			zap.String("asset_id", asset.ID.String()), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"completed":      true,
		"assetId":        asset.ID,
		"objectLocation": location,
	})
}

type abortMultipartRequest struct {
	StorageKey   string `json:"storageKey"`
	SessionToken string `json:"sessionToken"`
}

// AbortMultipart releases a session that will never complete. Idempotent.
// POST /uploads/multipart/abort/:slug
func (h *UploadHandler) AbortMultipart(c *gin.Context) {
	if _, err := h.businessService.GetBySlug(c.Param("slug")); err != nil {
		respondError(c, h.log, err)
		return
	}

	var req abortMultipartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	if err := h.uploadService.AbortSession(c.Request.Context(), req.StorageKey, req.SessionToken); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
