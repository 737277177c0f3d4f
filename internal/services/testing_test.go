package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vouchly/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func seedBusiness(t *testing.T, db *gorm.DB, slug, plan string) *models.Business {
	t.Helper()
	business := &models.Business{Slug: slug, Name: slug, Plan: plan}
	require.NoError(t, db.Create(business).Error)
	return business
}

func seedReview(t *testing.T, db *gorm.DB, businessID uuid.UUID, reviewType models.ReviewType) *models.Review {
	t.Helper()
	review := &models.Review{BusinessID: businessID, Status: models.ReviewStatusPending, Type: reviewType}
	require.NoError(t, db.Create(review).Error)
	return review
}
