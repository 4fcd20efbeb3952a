package models

import "gorm.io/gorm"

// Cart is one shopping cart row. There is at most one row per
// (user, product, size); adding the same combination again bumps
// Quantity instead of creating a second row.
type Cart struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string   `json:"user_id" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Size      string   `json:"size" gorm:"type:varchar(5)"`
	Quantity  int      `json:"quantity" gorm:"default:1"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Total is the row subtotal at the product's current price. Cart rows
// never freeze prices; that happens at checkout via OrderItem.
func (c *Cart) Total() float64 {
	if c.Product == nil {
		return 0
	}
	return c.Product.Price * float64(c.Quantity)
}
