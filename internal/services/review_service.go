package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"github.com/vouchly/backend/pkg/validation"
	"gorm.io/gorm"
)

var validReviewTypes = map[models.ReviewType]bool{
	models.ReviewTypeText:   true,
	models.ReviewTypeVideo:  true,
	models.ReviewTypeAudio:  true,
	models.ReviewTypeImport: true,
}

// ReviewService creates and reads testimonial submissions. A review must
// exist before an upload can complete against it; moderation of reviews
// happens elsewhere.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewInput struct {
	Type          models.ReviewType `json:"type"`
	ReviewerName  string            `json:"reviewerName"`
	ReviewerEmail string            `json:"reviewerEmail"`
	Rating        int               `json:"rating"`
	Body          string            `json:"body"`
}

// Create records a new pending review for a tenant
func (s *ReviewService) Create(businessID uuid.UUID, in CreateReviewInput) (*models.Review, error) {
	if in.Type == "" {
		in.Type = models.ReviewTypeText
	}
	if !validReviewTypes[in.Type] {
		return nil, apperrors.Validation("unknown review type")
	}
	if in.ReviewerEmail != "" && !validation.ValidateEmail(in.ReviewerEmail) {
		return nil, apperrors.Validation("invalid reviewer email")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, apperrors.Validation("rating must be between 0 and 5")
	}

	review := &models.Review{
		BusinessID:    businessID,
		Status:        models.ReviewStatusPending,
		Type:          in.Type,
		ReviewerName:  validation.SanitizeString(in.ReviewerName),
		ReviewerEmail: validation.SanitizeString(in.ReviewerEmail),
		Rating:        in.Rating,
		Body:          validation.SanitizeString(in.Body),
	}
	if err := s.db.Create(review).Error; err != nil {
		return nil, apperrors.Inconsistent("could not create review", err)
	}
	return review, nil
}

// Get loads a tenant's review by id
func (s *ReviewService) Get(businessID, reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ? AND business_id = ?", reviewID, businessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Inconsistent("could not load review", err)
	}
	return &review, nil
}
