package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/services"
	"github.com/vouchly/backend/pkg/apperrors"
	"go.uber.org/zap"
)

// ReviewHandler exposes the minimal review surface the upload flow needs:
// a review is created first, then media uploads complete against its id.
type ReviewHandler struct {
	reviewService   *services.ReviewService
	businessService *services.BusinessService
	log             *zap.Logger
}

func NewReviewHandler(reviewService *services.ReviewService, businessService *services.BusinessService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, businessService: businessService, log: log}
}

// CreateReview records a new pending review for a tenant
// POST /reviews/:slug
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	business, err := h.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var in services.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, h.log, apperrors.Validation("invalid request body"))
		return
	}

	review, err := h.reviewService.Create(business.ID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetReview loads one of the tenant's reviews
// GET /reviews/:slug/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	business, err := h.businessService.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, h.log, apperrors.Validation("review id must be a valid uuid"))
		return
	}

	review, err := h.reviewService.Get(business.ID, reviewID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
