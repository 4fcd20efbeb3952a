package handlers

import (
	"errors"
	"io"
	"log"

	"kiyim/internal/repositories"
	"kiyim/internal/services"

	"github.com/gofiber/fiber/v2"
)

// credentialHint is returned when the remote provider rejects the API
// key, pointing the user at where to get a valid one.
const credentialHint = "Invalid API key. Get one at replicate.com -> Account -> API Tokens"

// TryOnHandler serves the virtual try-on gateway: a garment catalog, job
// submission and status polling. The prediction id returned by run is
// held by the browser and replayed on each status call; the server keeps
// no job state.
type TryOnHandler struct {
	tryOnService   *services.TryOnService
	productService *services.ProductService
}

// NewTryOnHandler creates a new TryOnHandler.
func NewTryOnHandler(tryOnService *services.TryOnService, productService *services.ProductService) *TryOnHandler {
	return &TryOnHandler{
		tryOnService:   tryOnService,
		productService: productService,
	}
}

// RegisterRoutes registers the try-on routes on an authenticated router.
func (h *TryOnHandler) RegisterRoutes(router fiber.Router) {
	tryOnRoutes := router.Group("/try-on")
	tryOnRoutes.Get("/products", h.HandleTryOnProducts)
	tryOnRoutes.Post("/run", h.HandleRun)
	tryOnRoutes.Get("/status/:predictionId", h.HandleStatus)
}

// HandleTryOnProducts lists active products that have at least one image
// and can therefore be tried on.
func (h *TryOnHandler) HandleTryOnProducts(c *fiber.Ctx) error {
	products, err := h.productService.List(repositories.ProductFilter{WithImages: true, Limit: 24})
	if err != nil {
		log.Printf("Error listing try-on products: %v", err)
		return respondServiceError(c, "Could not list products", err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleRun submits a try-on job: the uploaded person photo plus the
// chosen product's garment image.
func (h *TryOnHandler) HandleRun(c *fiber.Ctx) error {
	apiKey := c.FormValue("api_key")
	productID := c.FormValue("product_id")

	var person []byte
	var personType string
	if file, err := c.FormFile("person_image"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Could not read person image", err)
		}
		person, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Could not read person image", err)
		}
		personType = file.Header.Get("Content-Type")
	}

	result, err := h.tryOnService.Submit(c.UserContext(), apiKey, productID, person, personType)
	if err != nil {
		log.Printf("Error submitting try-on job: %v", err)
		return h.respondTryOnError(c, err)
	}
	return c.JSON(result)
}

// HandleStatus polls the remote job once, best-effort.
func (h *TryOnHandler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.tryOnService.Status(c.UserContext(), c.Query("api_key"), c.Params("predictionId"))
	if err != nil {
		log.Printf("Error polling try-on job %s: %v", c.Params("predictionId"), err)
		return h.respondTryOnError(c, err)
	}
	return c.JSON(status)
}

// respondTryOnError maps try-on failures to the gateway's error bodies:
// credential rejections get a specific hint, other remote failures a
// truncated generic message.
func (h *TryOnHandler) respondTryOnError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCredential):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": credentialHint})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
