package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/services"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
)

// StorageHandler reports per-tenant storage consumption against plan limits
type StorageHandler struct {
	storageService  *services.StorageService
	businessService *services.BusinessService
	log             *zap.Logger
}

func NewStorageHandler(storageService *services.StorageService, businessService *services.BusinessService, log *zap.Logger) *StorageHandler {
	return &StorageHandler{storageService: storageService, businessService: businessService, log: log}
}

// GetUsage returns the tenant's current usage snapshot and plan limit
// GET /storage/:tenantId
func (h *StorageHandler) GetUsage(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("tenantId must be a valid uuid"))
		return
	}

	business, err := h.businessService.GetByID(tenantID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	quota, err := h.storageService.GetQuota(c.Request.Context(), business)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bytesUsed":   quota.BytesUsed,
		"bytesLimit":  quota.BytesLimit,
		"reviewCount": quota.ReviewCount,
		"mediaCount":  quota.MediaCount,
	})
}
