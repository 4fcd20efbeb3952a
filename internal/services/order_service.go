package services

import (
	"encoding/json"
	"fmt"
	"log"

	"kiyim/internal/models"
	"kiyim/internal/repositories"
	"kiyim/pkg/rabbitmq"
)

// OrderService handles checkout and the order lifecycle.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	mqClient  *rabbitmq.Client
	// strictStock decides what an insufficient (product, size) does at
	// checkout: false skips the decrement silently, true rejects the
	// whole checkout.
	strictStock bool
}

// NewOrderService creates a new OrderService. mqClient may be nil; order
// events are then skipped.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, mqClient *rabbitmq.Client, strictStock bool) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		mqClient:    mqClient,
		strictStock: strictStock,
	}
}

// Checkout turns the user's cart into an order. The total and the item
// prices are taken from the products' current prices at this moment and
// frozen. Order, items, stock decrements and cart clearing commit in one
// transaction.
func (s *OrderService) Checkout(userID, address string) (*models.Order, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			return nil, fmt.Errorf("cart item %s references missing product %s", item.ID, item.ProductID)
		}
		price := item.Product.Price
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     price,
		})
		total += price * float64(item.Quantity)
	}

	order := &models.Order{
		UserID:     userID,
		Status:     models.OrderPending,
		TotalPrice: total,
		Address:    address,
		Items:      orderItems,
	}
	if err := s.orderRepo.Checkout(order, s.strictStock); err != nil {
		return nil, err
	}

	s.publish("order.created", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"status":   order.Status,
		"total":    order.TotalPrice,
	})

	return order, nil
}

// UpdateStatus moves an order to a new status on behalf of a seller.
// Only a seller owning at least one product in the order may transition
// it, and only along the transition table.
func (s *OrderService) UpdateStatus(sellerID, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	owns, err := s.orderRepo.SellerOwnsOrder(orderID, sellerID)
	if err != nil {
		return err
	}
	if !owns {
		return fmt.Errorf("order %s has no items sold by this seller: %w", orderID, ErrForbidden)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return err
	}

	s.publish("order.status_updated", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	return nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.ListByUser(userID)
}

// GetForUser returns one order, provided it belongs to the user.
func (s *OrderService) GetForUser(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s does not belong to user: %w", orderID, ErrForbidden)
	}
	return order, nil
}

// RecentItemsBySeller returns the latest order items on the seller's
// products for the seller dashboard.
func (s *OrderService) RecentItemsBySeller(sellerID string, limit int) ([]models.OrderItem, error) {
	return s.orderRepo.ListItemsBySeller(sellerID, limit)
}

// RevenueBySeller sums the frozen prices of all items sold by the seller.
func (s *OrderService) RevenueBySeller(sellerID string) (float64, error) {
	return s.orderRepo.RevenueBySeller(sellerID)
}

// publish sends an order event, best-effort. A nil client or broker
// failure never fails the commerce flow.
func (s *OrderService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}
	if err := s.mqClient.Publish(eventType, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
