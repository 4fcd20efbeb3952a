package repositories

import "kiyim/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	// GetByUserProductSize returns the existing row for the combination,
	// or an ErrNotFound-wrapped error when the user has none.
	GetByUserProductSize(userID, productID, size string) (*models.Cart, error)
	Create(item *models.Cart) error
	Update(item *models.Cart) error
	// ListByUser returns the user's cart rows with products preloaded.
	ListByUser(userID string) ([]models.Cart, error)
	// DeleteForUser removes one row, but only when it belongs to the user.
	DeleteForUser(id, userID string) error
	CountByUser(userID string) (int64, error)
}
