package handlers

import (
	"log"

	"kiyim/internal/middleware"
	"kiyim/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler assembles the client and seller dashboards from the
// catalog and order services.
type DashboardHandler struct {
	authService    *services.AuthService
	productService *services.ProductService
	orderService   *services.OrderService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(authService *services.AuthService, productService *services.ProductService, orderService *services.OrderService) *DashboardHandler {
	return &DashboardHandler{
		authService:    authService,
		productService: productService,
		orderService:   orderService,
	}
}

// RegisterClientRoutes registers the client dashboard; the router must
// be gated to the client role.
func (h *DashboardHandler) RegisterClientRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleClientDashboard)
}

// RegisterSellerRoutes registers the seller dashboard; the router must
// be gated to the seller role.
func (h *DashboardHandler) RegisterSellerRoutes(router fiber.Router) {
	router.Get("/seller/dashboard", h.HandleSellerDashboard)
}

// HandleClientDashboard returns size/gender-matched recommendations, the
// derived BMI and the user's most recent orders.
func (h *DashboardHandler) HandleClientDashboard(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(middleware.UserID(c))
	if err != nil {
		return respondServiceError(c, "Could not load user", err)
	}

	recommendations, err := h.productService.Recommend(user, 12)
	if err != nil {
		log.Printf("Error building recommendations: %v", err)
		return respondServiceError(c, "Could not load recommendations", err)
	}

	orders, err := h.orderService.ListByUser(user.ID)
	if err != nil {
		return respondServiceError(c, "Could not load orders", err)
	}
	if len(orders) > 5 {
		orders = orders[:5]
	}

	return c.JSON(fiber.Map{
		"recommendations": recommendations,
		"bmi":             user.BMI(),
		"bmi_category":    user.BMICategory(),
		"orders":          orders,
	})
}

// HandleSellerDashboard returns the seller's products with review stats,
// their most recent sold items and total revenue.
func (h *DashboardHandler) HandleSellerDashboard(c *fiber.Ctx) error {
	sellerID := middleware.UserID(c)

	products, err := h.productService.ListForSeller(sellerID)
	if err != nil {
		log.Printf("Error listing seller products: %v", err)
		return respondServiceError(c, "Could not load products", err)
	}

	items, err := h.orderService.RecentItemsBySeller(sellerID, 20)
	if err != nil {
		return respondServiceError(c, "Could not load orders", err)
	}

	revenue, err := h.orderService.RevenueBySeller(sellerID)
	if err != nil {
		return respondServiceError(c, "Could not compute revenue", err)
	}

	return c.JSON(fiber.Map{
		"products":      products,
		"orders":        items,
		"total_revenue": revenue,
		"product_count": len(products),
	})
}
