package handlers

import (
	"log"

	"kiyim/internal/middleware"
	"kiyim/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler serves the client's order history.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes. The router must already be
// gated to the client role.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
}

// HandleGetOrders lists the user's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListByUser(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return respondServiceError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns one of the user's orders with its items.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetForUser(middleware.UserID(c), c.Params("id"))
	if err != nil {
		log.Printf("Error getting order %s: %v", c.Params("id"), err)
		return respondServiceError(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}
