package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/services"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
)

// AssetHandler exposes playback URLs, metadata enrichment and compliance
// erasure for registered assets
type AssetHandler struct {
	mediaService    *services.MediaService
	businessService *services.BusinessService
	log             *zap.Logger
}

func NewAssetHandler(mediaService *services.MediaService, businessService *services.BusinessService, log *zap.Logger) *AssetHandler {
	return &AssetHandler{mediaService: mediaService, businessService: businessService, log: log}
}

func (h *AssetHandler) resolve(c *gin.Context) (businessID, assetID uuid.UUID, ok bool) {
	business, err := h.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return uuid.Nil, uuid.Nil, false
	}
	assetID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("asset id must be a valid uuid"))
		return uuid.Nil, uuid.Nil, false
	}
	return business.ID, assetID, true
}

// GetAssetURL returns a time-limited playback URL
// GET /assets/:slug/:id/url
func (h *AssetHandler) GetAssetURL(c *gin.Context) {
	businessID, assetID, ok := h.resolve(c)
	if !ok {
		return
	}

	url, err := h.mediaService.PresignAssetGet(c.Request.Context(), businessID, assetID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

type updateAssetRequest struct {
	Metadata        string   `json:"metadata"`
	DurationSeconds *float64 `json:"durationSeconds"`
}

// UpdateAssetMetadata enriches an asset after registration
// PUT /assets/:slug/:id/metadata
func (h *AssetHandler) UpdateAssetMetadata(c *gin.Context) {
	businessID, assetID, ok := h.resolve(c)
	if !ok {
		return
	}

	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	asset, err := h.mediaService.UpdateAssetMetadata(businessID, assetID, req.Metadata, req.DurationSeconds)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// DeleteAsset performs compliance erasure: object delete plus soft delete
// DELETE /assets/:slug/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	businessID, assetID, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.mediaService.DeleteAsset(c.Request.Context(), businessID, assetID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
