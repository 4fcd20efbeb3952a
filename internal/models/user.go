package models

import (
	"math"

	"gorm.io/gorm"
)

// User roles. A user's role is fixed at registration and never changes.
const (
	RoleClient = "client"
	RoleSeller = "seller"
)

// ClothingSizes lists the sizes accepted for both user profiles and
// product stock rows.
var ClothingSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL"}

// User represents a marketplace account: either a buyer client or a shop
// seller, distinguished by Role.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password  string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	FirstName string `json:"first_name" gorm:"type:varchar(50)"`
	LastName  string `json:"last_name" gorm:"type:varchar(50)"`
	Phone     string `json:"phone" gorm:"type:varchar(20)"`
	Role      string `json:"role" gorm:"type:varchar(10);default:client"`

	// Client profile fields used for size recommendations.
	Gender string   `json:"gender" gorm:"type:varchar(10)"`
	Height *float64 `json:"height"` // cm
	Weight *float64 `json:"weight"` // kg
	Size   string   `json:"size" gorm:"type:varchar(5)"`
	Avatar string   `json:"avatar" gorm:"type:varchar(255)"`

	// Seller fields.
	ShopName string `json:"shop_name" gorm:"type:varchar(100)"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// BMI returns the user's body mass index rounded to one decimal, or nil
// when height or weight is not set. Derived, never stored.
func (u *User) BMI() *float64 {
	if u.Height == nil || u.Weight == nil || *u.Height <= 0 {
		return nil
	}
	h := *u.Height / 100
	bmi := math.Round(*u.Weight/(h*h)*10) / 10
	return &bmi
}

// BMICategory buckets the BMI value into a coarse label for the client
// dashboard. Empty when BMI cannot be derived.
func (u *User) BMICategory() string {
	bmi := u.BMI()
	if bmi == nil {
		return ""
	}
	switch {
	case *bmi < 18.5:
		return "underweight"
	case *bmi < 25:
		return "normal"
	case *bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
