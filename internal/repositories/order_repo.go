package repositories

import (
	"errors"

	"kiyim/internal/models"
)

// ErrInsufficientStock is returned by Checkout in strict mode when any
// ordered (product, size) lacks the requested quantity.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Checkout atomically creates the order with its items, decrements
	// stock per item with a conditional single-statement UPDATE, and
	// clears the user's cart. With strictStock false an insufficient
	// (product, size) simply skips its decrement; with strictStock true
	// the whole checkout rolls back with ErrInsufficientStock.
	Checkout(order *models.Order, strictStock bool) error
	GetByID(id string) (*models.Order, error)
	ListByUser(userID string) ([]models.Order, error)
	UpdateStatus(id string, status models.OrderStatus) error
	// SellerOwnsOrder reports whether any item of the order references a
	// product belonging to the seller.
	SellerOwnsOrder(orderID, sellerID string) (bool, error)
	// ListItemsBySeller returns the most recent order items on the
	// seller's products, with order and product preloaded.
	ListItemsBySeller(sellerID string, limit int) ([]models.OrderItem, error)
	// RevenueBySeller sums the frozen item prices over the seller's sold items.
	RevenueBySeller(sellerID string) (float64, error)
}
