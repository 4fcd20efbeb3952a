package handlers

import (
	"log"
	"mime/multipart"
	"strconv"

	"kiyim/internal/middleware"
	"kiyim/internal/models"
	"kiyim/internal/services"
	"kiyim/pkg/imagestore"

	"github.com/gofiber/fiber/v2"
)

// SellerHandler serves the seller-only surface: product management and
// order status transitions.
type SellerHandler struct {
	productService *services.ProductService
	orderService   *services.OrderService
	store          imagestore.Store
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(productService *services.ProductService, orderService *services.OrderService, store imagestore.Store) *SellerHandler {
	return &SellerHandler{
		productService: productService,
		orderService:   orderService,
		store:          store,
	}
}

// RegisterRoutes registers the seller routes. The router must already be
// gated to the seller role.
func (h *SellerHandler) RegisterRoutes(router fiber.Router) {
	sellerRoutes := router.Group("/seller")
	sellerRoutes.Post("/products", h.HandleAddProduct)
	sellerRoutes.Put("/products/:id", h.HandleEditProduct)
	sellerRoutes.Delete("/products/:id", h.HandleDeleteProduct)
	sellerRoutes.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// parseProductForm reads the multipart product form: scalar fields,
// parallel sizes/quantities arrays and image files.
func (h *SellerHandler) parseProductForm(c *fiber.Ctx) (services.ProductInput, []*multipart.FileHeader, error) {
	input := services.ProductInput{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Gender:      c.FormValue("gender"),
		Style:       c.FormValue("style"),
		Description: c.FormValue("description"),
	}
	if price := c.FormValue("price"); price != "" {
		v, err := parseFloat(price)
		if err != nil {
			return input, nil, err
		}
		input.Price = v
	}

	form, err := c.MultipartForm()
	if err != nil {
		return input, nil, err
	}

	sizes := form.Value["sizes"]
	quantities := form.Value["quantities"]
	for i, size := range sizes {
		if i >= len(quantities) || size == "" || quantities[i] == "" {
			continue
		}
		qty, err := strconv.Atoi(quantities[i])
		if err != nil {
			return input, nil, err
		}
		input.Sizes = append(input.Sizes, models.ProductSize{Size: size, Quantity: qty})
	}

	return input, form.File["images"], nil
}

// saveImages stores the uploaded files and returns their references.
func (h *SellerHandler) saveImages(files []*multipart.FileHeader) ([]string, error) {
	var refs []string
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		ref, err := h.store.Save(file.Filename, file.Header.Get("Content-Type"), f)
		f.Close()
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// HandleAddProduct creates a product with sizes and up to five images.
func (h *SellerHandler) HandleAddProduct(c *fiber.Ctx) error {
	input, files, err := h.parseProductForm(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid product form", err)
	}
	if len(files) > models.MaxProductImages {
		files = files[:models.MaxProductImages]
	}
	refs, err := h.saveImages(files)
	if err != nil {
		log.Printf("Error saving product images: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "Could not save images", err)
	}

	product, err := h.productService.CreateProduct(middleware.UserID(c), input, refs)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondServiceError(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleEditProduct updates a product's fields, replaces its size rows
// and appends any new images up to the cap.
func (h *SellerHandler) HandleEditProduct(c *fiber.Ctx) error {
	input, files, err := h.parseProductForm(c)
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid product form", err)
	}
	refs, err := h.saveImages(files)
	if err != nil {
		log.Printf("Error saving product images: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "Could not save images", err)
	}

	product, err := h.productService.UpdateProduct(middleware.UserID(c), c.Params("id"), input, refs)
	if err != nil {
		log.Printf("Error updating product %s: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct soft-deletes the seller's product.
func (h *SellerHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(middleware.UserID(c), c.Params("id")); err != nil {
		log.Printf("Error deleting product %s: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product removed"})
}

// HandleUpdateOrderStatus transitions an order's status along the
// transition table, seller ownership required.
func (h *SellerHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if req.Status == "" {
		return respondError(c, fiber.StatusBadRequest, "Status is required", nil)
	}

	err := h.orderService.UpdateStatus(middleware.UserID(c), c.Params("id"), models.OrderStatus(req.Status))
	if err != nil {
		log.Printf("Error updating order %s status: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not update order status", err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated to " + req.Status})
}
