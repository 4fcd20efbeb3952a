package repositories

import "kiyim/internal/models"

// ProductFilter narrows a catalog listing. Zero values mean "no filter";
// all supplied filters are combined conjunctively.
type ProductFilter struct {
	Category string
	// Gender matches products targeted at this gender or at unisex.
	Gender string
	// Size keeps only products with stock left in this size.
	Size  string
	Style string
	// Search is a case-insensitive substring match over name OR description.
	Search   string
	MinPrice *float64
	MaxPrice *float64
	// Sort is one of the SortKeys values; empty means newest first.
	Sort string
	// WithImages keeps only products that have at least one image.
	WithImages bool
	Limit      int
}

// SortKeys maps the public sort parameter to an ORDER BY clause. Anything
// not in this table falls back to newest-first.
var SortKeys = map[string]string{
	"":             "created_at DESC",
	"-created_at":  "created_at DESC",
	"created_at":   "created_at ASC",
	"price":        "price ASC",
	"-price":       "price DESC",
	"-views_count": "views_count DESC",
}

// ProductRepository defines the interface for product data access.
// Products are soft-deleted through IsActive, never removed.
type ProductRepository interface {
	Create(product *models.Product) error
	Update(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	List(filter ProductFilter) ([]models.Product, error)
	ListBySeller(sellerID string) ([]models.Product, error)
	IncrementViews(id string) error
	// ReplaceSizes swaps all size rows of a product for the given set.
	ReplaceSizes(productID string, sizes []models.ProductSize) error
	AddImages(productID string, images []models.ProductImage) error
	CountImages(productID string) (int64, error)
}
