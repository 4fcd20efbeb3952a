package repositories

import "kiyim/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	ListByProduct(productID string) ([]models.Review, error)
	// Stats returns the review count and average rating for a product.
	// The average is 0 when the product has no reviews.
	Stats(productID string) (count int64, avg float64, err error)
}
