package handlers

import (
	"log"

	"kiyim/internal/middleware"
	"kiyim/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the client's shopping cart and checkout.
type CartHandler struct {
	cartService  *services.CartService
	orderService *services.OrderService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, orderService *services.OrderService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		orderService: orderService,
	}
}

// RegisterRoutes registers the cart routes. The router must already be
// gated to the client role.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Get("/count", h.HandleCartCount)
	cartRoutes.Post("/add/:productId", h.HandleAddToCart)
	cartRoutes.Post("/remove/:id", h.HandleRemoveFromCart)
	router.Post("/checkout", h.HandleCheckout)
}

// HandleGetCart returns the cart rows and live total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	contents, err := h.cartService.Contents(middleware.UserID(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return respondServiceError(c, "Could not load cart", err)
	}
	return c.JSON(contents)
}

// HandleCartCount returns the number of cart rows.
func (h *CartHandler) HandleCartCount(c *fiber.Ctx) error {
	count, err := h.cartService.Count(middleware.UserID(c))
	if err != nil {
		log.Printf("Error counting cart: %v", err)
		return respondServiceError(c, "Could not count cart", err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleAddToCart puts one unit of (product, size) in the cart, merging
// with an existing row for the same combination.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	size := c.FormValue("size")
	item, err := h.cartService.Add(middleware.UserID(c), c.Params("productId"), size)
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		return respondServiceError(c, "Could not add to cart", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Added to cart",
		"item":    item,
	})
}

// HandleRemoveFromCart removes one of the user's cart rows.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.cartService.Remove(middleware.UserID(c), c.Params("id")); err != nil {
		log.Printf("Error removing cart item %s: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not remove cart item", err)
	}
	return c.JSON(fiber.Map{"message": "Removed from cart"})
}

// HandleCheckout converts the cart into an order delivered to the given
// address.
func (h *CartHandler) HandleCheckout(c *fiber.Ctx) error {
	address := c.FormValue("address")
	order, err := h.orderService.Checkout(middleware.UserID(c), address)
	if err != nil {
		log.Printf("Error during checkout: %v", err)
		return respondServiceError(c, "Checkout failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}
