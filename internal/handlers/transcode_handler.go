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

// TranscodeHandler is the worker-facing surface: workers pull queued jobs
// and push status transitions back. No encoding happens in this service.
type TranscodeHandler struct {
	transcodeService *services.TranscodeService
	log              *zap.Logger
}

func NewTranscodeHandler(transcodeService *services.TranscodeService, log *zap.Logger) *TranscodeHandler {
	return &TranscodeHandler{transcodeService: transcodeService, log: log}
}

// ListJobs returns the oldest jobs in a status, default queued
// GET /transcode/jobs?status=queued&limit=50
func (h *TranscodeHandler) ListJobs(c *gin.Context) {
	status := models.TranscodeStatus(c.DefaultQuery("status", string(models.TranscodeStatusQueued)))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("limit must be an integer"))
		return
	}

	jobs, err := h.transcodeService.ListByStatus(status, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJob loads a job by id
// GET /transcode/jobs/:id
func (h *TranscodeHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("job id must be a valid uuid"))
		return
	}

	job, err := h.transcodeService.GetJob(jobID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

type setStatusRequest struct {
	Status models.TranscodeStatus `json:"status"`
	Error  *string                `json:"error"`
}

// SetJobStatus overwrites a job's status and error message (last write wins)
// PUT /transcode/jobs/:id/status
func (h *TranscodeHandler) SetJobStatus(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("job id must be a valid uuid"))
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	job, err := h.transcodeService.SetStatus(jobID, req.Status, req.Error)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
