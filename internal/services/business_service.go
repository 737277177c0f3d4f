package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/vouchly/backend/internal/models"
	"github.com/vouchly/backend/pkg/apperrors"
	"github.com/vouchly/backend/pkg/validation"
	"gorm.io/gorm"
)

// BusinessService resolves tenants. URL slugs come from untrusted clients,
// so lookups validate the slug shape before touching the database.
type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

func (s *BusinessService) GetBySlug(slug string) (*models.Business, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !validation.ValidateSlug(slug) {
		return nil, apperrors.Validation("invalid business slug")
	}
	var business models.Business
	if err := s.db.First(&business, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("business not found")
		}
		return nil, apperrors.Inconsistent("could not load business", err)
	}
	return &business, nil
}

func (s *BusinessService) GetByID(id uuid.UUID) (*models.Business, error) {
	var business models.Business
	if err := s.db.First(&business, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("business not found")
		}
		return nil, apperrors.Inconsistent("could not load business", err)
	}
	return &business, nil
}
