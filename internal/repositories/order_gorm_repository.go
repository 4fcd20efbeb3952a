package repositories

import (
	"errors"
	"fmt"

	"kiyim/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Checkout creates the order, decrements stock and clears the cart in one
// transaction. The stock decrement is a conditional UPDATE
// (quantity = quantity - n WHERE quantity >= n) so two concurrent
// checkouts can never drive stock negative.
func (r *GORMOrderRepository) Checkout(order *models.Order, strictStock bool) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
		order.Items[i].Product = nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, item := range order.Items {
			res := tx.Model(&models.ProductSize{}).
				Where("product_id = ? AND size = ? AND quantity >= ?", item.ProductID, item.Size, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s size %s: %w", item.ProductID, item.Size, res.Error)
			}
			// No matching row means the size is missing or short on stock.
			if res.RowsAffected == 0 && strictStock {
				return fmt.Errorf("product %s size %s: %w", item.ProductID, item.Size, ErrInsufficientStock)
			}
		}
		if err := tx.Where("user_id = ?", order.UserID).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart for user %s: %w", order.UserID, err)
		}
		return nil
	})
	return err
}

// GetByID retrieves a single order with its items and their products.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus overwrites the order's status column.
func (r *GORMOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// SellerOwnsOrder checks the OrderItem -> Product -> seller chain.
func (r *GORMOrderRepository) SellerOwnsOrder(orderID, sellerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.order_id = ? AND products.seller_id = ?", orderID, sellerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order ownership: %w", err)
	}
	return count > 0, nil
}

// ListItemsBySeller returns the latest order items sold by the seller.
func (r *GORMOrderRepository) ListItemsBySeller(sellerID string, limit int) ([]models.OrderItem, error) {
	var items []models.OrderItem
	q := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("products.seller_id = ?", sellerID).
		Order("orders.created_at DESC").
		Preload("Product")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list order items for seller %s: %w", sellerID, err)
	}
	return items, nil
}

// RevenueBySeller sums price over all items on the seller's products.
func (r *GORMOrderRepository) RevenueBySeller(sellerID string) (float64, error) {
	var total float64
	err := r.db.Model(&models.OrderItem{}).
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.seller_id = ?", sellerID).
		Select("COALESCE(SUM(order_items.price), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute revenue for seller %s: %w", sellerID, err)
	}
	return total, nil
}
