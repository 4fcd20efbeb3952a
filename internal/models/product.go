package models

import "gorm.io/gorm"

// Product categories. The keys come from the marketplace's clothing
// taxonomy and also drive the try-on placement zone lookup.
var ProductCategories = []string{"ustki", "ichki", "jemper", "pidjak", "sport", "oyoq", "aksesuar"}

// Product styles.
var ProductStyles = []string{"klassik", "sport", "casual", "business", "street"}

// Product gender targets. "unisex" products match both gender filters.
var ProductGenders = []string{"male", "female", "unisex"}

// MaxProductImages caps how many images a product may carry.
const MaxProductImages = 5

// Product is a catalog entry owned by a seller. Products are never hard
// deleted; removal flips IsActive to false so existing order items keep
// their reference.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID    string  `json:"seller_id" gorm:"index;type:varchar(36)"`
	Seller      *User   `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Name        string  `json:"name" gorm:"type:varchar(200)" validate:"required,min=3,max=200"`
	Category    string  `json:"category" gorm:"type:varchar(20)" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Gender      string  `json:"gender" gorm:"type:varchar(10);default:unisex"`
	Style       string  `json:"style" gorm:"type:varchar(20);default:casual"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
	ViewsCount  int     `json:"views_count" gorm:"default:0"`

	Images  []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	Sizes   []ProductSize  `json:"sizes,omitempty" gorm:"foreignKey:ProductID"`
	Reviews []Review       `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// MainImage returns the product's primary image (lowest position), or nil
// when the product has no images. Callers must have preloaded Images.
func (p *Product) MainImage() *ProductImage {
	if len(p.Images) == 0 {
		return nil
	}
	main := &p.Images[0]
	for i := range p.Images {
		if p.Images[i].Position < main.Position {
			main = &p.Images[i]
		}
	}
	return main
}

// AvailableSizes returns the size rows with stock left.
func (p *Product) AvailableSizes() []ProductSize {
	var out []ProductSize
	for _, s := range p.Sizes {
		if s.Quantity > 0 {
			out = append(out, s)
		}
	}
	return out
}

// ProductImage is one image of a product, ordered ascending by Position.
// Image holds an image store reference, not a raw path.
type ProductImage struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"index;type:varchar(36)"`
	Image     string `json:"image" gorm:"type:varchar(255)"`
	Position  int    `json:"position" gorm:"default:0"`
}

// ProductSize tracks per-size stock for a product. Unique per
// (product, size); Quantity never goes below zero.
type ProductSize struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"uniqueIndex:idx_product_size;type:varchar(36)"`
	Size      string `json:"size" gorm:"uniqueIndex:idx_product_size;type:varchar(5)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}
