package models

import "gorm.io/gorm"

// Review is a buyer's rating of a product. A user may review the same
// product any number of times.
type Review struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)"`
	UserID    string `json:"user_id" gorm:"type:varchar(36)"`
	User      *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating    int    `json:"rating" gorm:"default:5" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"omitempty,max=2000"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
