package repositories

import (
	"fmt"

	"kiyim/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create adds a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// ListByProduct returns the product's reviews, newest first, with authors.
func (r *GORMReviewRepository) ListByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// Stats returns the review count and average rating in one query.
func (r *GORMReviewRepository) Stats(productID string) (int64, float64, error) {
	var row struct {
		Count int64
		Avg   float64
	}
	err := r.db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute review stats for product %s: %w", productID, err)
	}
	return row.Count, row.Avg, nil
}
