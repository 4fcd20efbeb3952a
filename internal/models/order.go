package models

import "gorm.io/gorm"

// OrderStatus enumerates the order lifecycle states.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderAccepted  OrderStatus = "accepted"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// orderTransitions is the explicit forward-only transition table. A
// delivered or cancelled order is terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderAccepted, OrderCancelled},
	OrderAccepted:  {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is created at checkout from the user's cart rows. TotalPrice is
// computed once at checkout and immutable afterwards.
type Order struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string      `json:"user_id" gorm:"index;type:varchar(36)"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(20);default:pending"`
	TotalPrice float64     `json:"total_price"`
	Address    string      `json:"address"`
	Items      []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem snapshots one cart row at checkout. Price is frozen at order
// time and does not follow later product price changes.
type OrderItem struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string   `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Size      string   `json:"size" gorm:"type:varchar(5)"`
	Quantity  int      `json:"quantity" gorm:"default:1"`
	Price     float64  `json:"price"`
}

// Subtotal is the frozen line total.
func (i *OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
