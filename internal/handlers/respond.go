package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
)

// respondError maps the service error taxonomy onto HTTP. Upstream detail is
// logged but never echoed to untrusted clients.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	appErr := apperrors.From(err)
	if appErr == nil {
		log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Category {
	case apperrors.CategoryValidation:
		status = http.StatusBadRequest
	case apperrors.CategoryNotFound:
		status = http.StatusNotFound
	case apperrors.CategoryUpstream:
		status = http.StatusBadGateway
	case apperrors.CategoryInconsistent:
		status = http.StatusConflict
	}

	if appErr.Err != nil {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("category", string(appErr.Category)),
			zap.Error(appErr.Err))
	}
	c.JSON(status, gin.H{"error": string(appErr.Category), "message": appErr.Message})
}
