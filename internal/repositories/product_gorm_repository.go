package repositories

import (
	"errors"
	"fmt"
	"strings"

	"kiyim/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// Create creates a new product together with any nested size and image rows.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for i := range product.Sizes {
		if product.Sizes[i].ID == "" {
			product.Sizes[i].ID = uuid.New().String()
		}
	}
	for i := range product.Images {
		if product.Images[i].ID == "" {
			product.Images[i].ID = uuid.New().String()
		}
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all scalar fields of an existing product. Size and image
// rows are managed through ReplaceSizes and AddImages.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Sizes", "Images", "Reviews", "Seller").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrNotFound)
	}
	return nil
}

// GetByID retrieves a single product with its images (ordered), sizes and
// reviews.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sizes").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Reviews.User").
		Preload("Seller").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// List returns active products matching all supplied filters.
func (r *GORMProductRepository) List(filter ProductFilter) ([]models.Product, error) {
	q := r.db.Model(&models.Product{}).
		Where("is_active = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sizes")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Gender != "" {
		q = q.Where("gender IN ?", []string{filter.Gender, "unisex"})
	}
	if filter.Size != "" {
		q = q.Where("products.id IN (SELECT product_id FROM product_sizes WHERE size = ? AND quantity > 0)", filter.Size)
	}
	if filter.Style != "" {
		q = q.Where("style = ?", filter.Style)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.WithImages {
		q = q.Where("products.id IN (SELECT product_id FROM product_images)")
	}

	order, ok := SortKeys[filter.Sort]
	if !ok {
		order = SortKeys[""]
	}
	q = q.Order(order)

	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ListBySeller returns the seller's active products with images and sizes.
func (r *GORMProductRepository) ListBySeller(sellerID string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Sizes").
		Where("seller_id = ? AND is_active = ?", sellerID, true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products for seller %s: %w", sellerID, err)
	}
	return products, nil
}

// IncrementViews bumps the product's view counter in a single UPDATE so
// concurrent detail views do not lose counts.
func (r *GORMProductRepository) IncrementViews(id string) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment views for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// ReplaceSizes deletes all size rows of the product and inserts the given
// set, in one transaction.
func (r *GORMProductRepository) ReplaceSizes(productID string, sizes []models.ProductSize) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		for i := range sizes {
			sizes[i].ID = uuid.New().String()
			sizes[i].ProductID = productID
		}
		if len(sizes) == 0 {
			return nil
		}
		return tx.Create(&sizes).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace sizes for product %s: %w", productID, err)
	}
	return nil
}

// AddImages appends image rows to the product.
func (r *GORMProductRepository) AddImages(productID string, images []models.ProductImage) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		if images[i].ID == "" {
			images[i].ID = uuid.New().String()
		}
		images[i].ProductID = productID
	}
	if err := r.db.Create(&images).Error; err != nil {
		return fmt.Errorf("failed to add images for product %s: %w", productID, err)
	}
	return nil
}

// CountImages returns how many images the product currently has.
func (r *GORMProductRepository) CountImages(productID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count images for product %s: %w", productID, err)
	}
	return count, nil
}
