package handlers

import (
	"log"

	"kiyim/internal/middleware"
	"kiyim/internal/repositories"
	"kiyim/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog: home page data, product
// listing with filters, product detail and reviews.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleHome)
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:id", h.HandleProductDetail)
}

// RegisterProtectedRoutes registers catalog routes that need a login.
func (h *ProductHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/products/:id/reviews", h.HandleAddReview)
}

// HandleHome returns featured and newly arrived products.
func (h *ProductHandler) HandleHome(c *fiber.Ctx) error {
	data, err := h.service.Home()
	if err != nil {
		log.Printf("Error building home data: %v", err)
		return respondServiceError(c, "Could not load home data", err)
	}
	return c.JSON(data)
}

// HandleListProducts lists active products. All query filters combine
// conjunctively; gender also matches unisex products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := repositories.ProductFilter{
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Size:     c.Query("size"),
		Style:    c.Query("style"),
		Search:   c.Query("q"),
		Sort:     c.Query("sort"),
	}
	if min := c.Query("min_price"); min != "" {
		v, err := parseFloat(min)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid min_price", err)
		}
		filter.MinPrice = &v
	}
	if max := c.Query("max_price"); max != "" {
		v, err := parseFloat(max)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid max_price", err)
		}
		filter.MaxPrice = &v
	}

	products, err := h.service.List(filter)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondServiceError(c, "Could not retrieve products", err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleProductDetail returns one product with reviews, rating and
// related products, bumping the view counter.
func (h *ProductHandler) HandleProductDetail(c *fiber.Ctx) error {
	detail, err := h.service.Detail(c.Params("id"))
	if err != nil {
		log.Printf("Error getting product %s: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not retrieve product", err)
	}
	return c.JSON(detail)
}

// ReviewRequest is the payload for posting a product review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// HandleAddReview records a review on an active product.
func (h *ProductHandler) HandleAddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	review, err := h.service.AddReview(middleware.UserID(c), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		log.Printf("Error adding review: %v", err)
		return respondServiceError(c, "Could not add review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review added",
		"review":  review,
	})
}
