package services

import (
	"fmt"
	"math"

	"kiyim/internal/models"
	"kiyim/internal/repositories"
)

// ProductService handles catalog logic: listing, detail, seller CRUD,
// recommendations and reviews.
type ProductService struct {
	productRepo repositories.ProductRepository
	reviewRepo  repositories.ReviewRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, reviewRepo repositories.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// List returns active products matching the filter.
func (s *ProductService) List(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(filter)
}

// HomeData feeds the landing page.
type HomeData struct {
	Featured    []models.Product `json:"featured"`
	NewArrivals []models.Product `json:"new_arrivals"`
	Categories  []string         `json:"categories"`
}

// Home returns the most viewed and newest active products.
func (s *ProductService) Home() (*HomeData, error) {
	featured, err := s.productRepo.List(repositories.ProductFilter{Sort: "-views_count", Limit: 8})
	if err != nil {
		return nil, err
	}
	newArrivals, err := s.productRepo.List(repositories.ProductFilter{Limit: 8})
	if err != nil {
		return nil, err
	}
	return &HomeData{
		Featured:    featured,
		NewArrivals: newArrivals,
		Categories:  models.ProductCategories,
	}, nil
}

// ProductDetail bundles a product with its review stats and related
// products for the detail page.
type ProductDetail struct {
	Product   *models.Product  `json:"product"`
	AvgRating float64          `json:"avg_rating"`
	Related   []models.Product `json:"related"`
}

// Detail returns an active product, bumps its view counter and attaches
// review stats plus up to four related products from the same category.
func (s *ProductService) Detail(id string) (*ProductDetail, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product with ID %s: %w", id, repositories.ErrNotFound)
	}

	if err := s.productRepo.IncrementViews(id); err != nil {
		return nil, err
	}
	product.ViewsCount++

	_, avg, err := s.reviewRepo.Stats(id)
	if err != nil {
		return nil, err
	}

	sameCategory, err := s.productRepo.List(repositories.ProductFilter{Category: product.Category, Limit: 5})
	if err != nil {
		return nil, err
	}
	related := make([]models.Product, 0, 4)
	for _, p := range sameCategory {
		if p.ID != id && len(related) < 4 {
			related = append(related, p)
		}
	}

	return &ProductDetail{
		Product:   product,
		AvgRating: math.Round(avg*10) / 10,
		Related:   related,
	}, nil
}

// Recommend returns active products matching the client's gender and
// profile size (with stock), for the dashboard.
func (s *ProductService) Recommend(user *models.User, limit int) ([]models.Product, error) {
	return s.productRepo.List(repositories.ProductFilter{
		Gender: user.Gender,
		Size:   user.Size,
		Limit:  limit,
	})
}

// ProductInput carries the seller-editable product fields.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=3,max=200"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Gender      string  `json:"gender"`
	Style       string  `json:"style"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Sizes       []models.ProductSize
}

func (in *ProductInput) check() error {
	if !contains(models.ProductCategories, in.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	if in.Gender != "" && !contains(models.ProductGenders, in.Gender) {
		return fmt.Errorf("%w: unknown gender %q", ErrValidation, in.Gender)
	}
	if in.Style != "" && !contains(models.ProductStyles, in.Style) {
		return fmt.Errorf("%w: unknown style %q", ErrValidation, in.Style)
	}
	for _, size := range in.Sizes {
		if !validSize(size.Size) {
			return fmt.Errorf("%w: unknown size %q", ErrValidation, size.Size)
		}
		if size.Quantity < 0 {
			return fmt.Errorf("%w: negative quantity for size %s", ErrValidation, size.Size)
		}
	}
	return nil
}

// CreateProduct creates a product for the seller with its size rows and
// up to MaxProductImages image references.
func (s *ProductService) CreateProduct(sellerID string, input ProductInput, imageRefs []string) (*models.Product, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	if len(imageRefs) > models.MaxProductImages {
		imageRefs = imageRefs[:models.MaxProductImages]
	}
	images := make([]models.ProductImage, 0, len(imageRefs))
	for i, ref := range imageRefs {
		images = append(images, models.ProductImage{Image: ref, Position: i})
	}

	product := &models.Product{
		SellerID:    sellerID,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Gender:      defaultIfEmpty(input.Gender, "unisex"),
		Style:       defaultIfEmpty(input.Style, "casual"),
		Description: input.Description,
		IsActive:    true,
		Sizes:       input.Sizes,
		Images:      images,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a seller's edit: scalar fields are overwritten
// and size rows replaced wholesale; new images append up to the cap.
func (s *ProductService) UpdateProduct(sellerID, productID string, input ProductInput, newImageRefs []string) (*models.Product, error) {
	if err := input.check(); err != nil {
		return nil, err
	}

	product, err := s.ownedProduct(sellerID, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Price = input.Price
	product.Gender = defaultIfEmpty(input.Gender, product.Gender)
	product.Style = defaultIfEmpty(input.Style, product.Style)
	product.Description = input.Description
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.ReplaceSizes(productID, input.Sizes); err != nil {
		return nil, err
	}

	if len(newImageRefs) > 0 {
		current, err := s.productRepo.CountImages(productID)
		if err != nil {
			return nil, err
		}
		room := models.MaxProductImages - int(current)
		if room > 0 {
			if len(newImageRefs) > room {
				newImageRefs = newImageRefs[:room]
			}
			images := make([]models.ProductImage, 0, len(newImageRefs))
			for i, ref := range newImageRefs {
				images = append(images, models.ProductImage{Image: ref, Position: int(current) + i})
			}
			if err := s.productRepo.AddImages(productID, images); err != nil {
				return nil, err
			}
		}
	}

	return s.productRepo.GetByID(productID)
}

// DeleteProduct soft-deletes the seller's product. Rows stay referenced
// by existing order items, so nothing is ever hard-deleted.
func (s *ProductService) DeleteProduct(sellerID, productID string) error {
	product, err := s.ownedProduct(sellerID, productID)
	if err != nil {
		return err
	}
	product.IsActive = false
	return s.productRepo.Update(product)
}

// SellerProduct is a seller's product annotated with its review stats.
type SellerProduct struct {
	models.Product
	ReviewCount int64   `json:"review_count"`
	AvgRating   float64 `json:"avg_rating"`
}

// ListForSeller returns the seller's active products with review stats.
func (s *ProductService) ListForSeller(sellerID string) ([]SellerProduct, error) {
	products, err := s.productRepo.ListBySeller(sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]SellerProduct, 0, len(products))
	for _, p := range products {
		count, avg, err := s.reviewRepo.Stats(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, SellerProduct{
			Product:     p,
			ReviewCount: count,
			AvgRating:   math.Round(avg*10) / 10,
		})
	}
	return out, nil
}

// AddReview records a rating (1-5) and comment on an active product.
// Users may review the same product repeatedly.
func (s *ProductService) AddReview(userID, productID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product with ID %s: %w", productID, repositories.ErrNotFound)
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ProductService) ownedProduct(sellerID, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, fmt.Errorf("product %s does not belong to seller: %w", productID, ErrForbidden)
	}
	return product, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func defaultIfEmpty(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
