package repositories

import (
	"errors"
	"fmt"

	"kiyim/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserProductSize looks up the user's row for a (product, size) pair.
func (r *GORMCartRepository) GetByUserProductSize(userID, productID, size string) (*models.Cart, error) {
	var item models.Cart
	err := r.db.First(&item, "user_id = ? AND product_id = ? AND size = ?", userID, productID, size).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item for product %s size %s: %w", productID, size, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return &item, nil
}

// Create adds a new cart row.
func (r *GORMCartRepository) Create(item *models.Cart) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// Update saves an existing cart row.
func (r *GORMCartRepository) Update(item *models.Cart) error {
	res := r.db.Omit("Product").Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

// ListByUser returns all cart rows of the user, newest last, with the
// product (and its images) preloaded for price and display.
func (r *GORMCartRepository) ListByUser(userID string) ([]models.Cart, error) {
	var items []models.Cart
	err := r.db.
		Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items for user %s: %w", userID, err)
	}
	return items, nil
}

// DeleteForUser removes one cart row owned by the user.
func (r *GORMCartRepository) DeleteForUser(id, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Cart{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// CountByUser returns the number of cart rows the user has.
func (r *GORMCartRepository) CountByUser(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cart items for user %s: %w", userID, err)
	}
	return count, nil
}
