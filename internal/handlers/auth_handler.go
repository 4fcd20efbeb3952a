package handlers

import (
	"log"
	"strings"

	"kiyim/internal/middleware"
	"kiyim/internal/models"
	"kiyim/internal/services"
	"kiyim/pkg/imagestore"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and profile editing.
type AuthHandler struct {
	authService *services.AuthService
	store       imagestore.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store imagestore.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register/client", h.HandleRegisterClient)
	router.Post("/register/seller", h.HandleRegisterSeller)
	router.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that need a valid token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Put("/profile", h.HandleUpdateProfile)
}

// ClientRegisterRequest is the registration payload for buyers. Height,
// weight and size feed the dashboard recommendations.
type ClientRegisterRequest struct {
	Username  string  `json:"username" validate:"required,min=3,max=100"`
	Password  string  `json:"password" validate:"required,min=6"`
	FirstName string  `json:"first_name" validate:"required,max=50"`
	LastName  string  `json:"last_name" validate:"required,max=50"`
	Phone     string  `json:"phone" validate:"required,max=20"`
	Gender    string  `json:"gender" validate:"required,oneof=male female"`
	Height    float64 `json:"height" validate:"required,min=100,max=250"`
	Weight    float64 `json:"weight" validate:"required,min=30,max=300"`
	Size      string  `json:"size" validate:"required,oneof=XS S M L XL XXL XXXL"`
}

// HandleRegisterClient registers a buyer account. The role is fixed here
// and never changes.
func (h *AuthHandler) HandleRegisterClient(c *fiber.Ctx) error {
	var req ClientRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := &models.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleClient,
		Gender:    req.Gender,
		Height:    &req.Height,
		Weight:    &req.Weight,
		Size:      req.Size,
	}
	return h.register(c, user)
}

// SellerRegisterRequest is the registration payload for shops.
type SellerRegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Phone     string `json:"phone" validate:"required,max=20"`
	ShopName  string `json:"shop_name" validate:"required,max=100"`
}

// HandleRegisterSeller registers a seller account.
func (h *AuthHandler) HandleRegisterSeller(c *fiber.Ctx) error {
	var req SellerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := &models.User{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleSeller,
		ShopName:  req.ShopName,
	}
	return h.register(c, user)
}

func (h *AuthHandler) register(c *fiber.Ctx, user *models.User) error {
	if err := h.authService.RegisterUser(user); err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already taken") {
			return respondError(c, fiber.StatusConflict, "Registration failed", err)
		}
		return respondServiceError(c, "Could not register user", err)
	}

	// For security, do not return the password hash
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token. The role comes
// back in the response so clients can route to the right dashboard.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return respondError(c, fiber.StatusUnauthorized, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"role":    user.Role,
	})
}

// HandleUpdateProfile applies a profile edit. Accepts multipart form so
// an avatar image can ride along.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	update := services.ProfileUpdate{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Phone:     c.FormValue("phone"),
		Gender:    c.FormValue("gender"),
		Size:      c.FormValue("size"),
	}
	if height := c.FormValue("height"); height != "" {
		v, err := parseFloat(height)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid height", err)
		}
		update.Height = &v
	}
	if weight := c.FormValue("weight"); weight != "" {
		v, err := parseFloat(weight)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Invalid weight", err)
		}
		update.Weight = &v
	}

	if file, err := c.FormFile("avatar"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "Could not read avatar", err)
		}
		ref, err := h.store.Save(file.Filename, file.Header.Get("Content-Type"), f)
		f.Close()
		if err != nil {
			log.Printf("Error saving avatar: %v", err)
			return respondError(c, fiber.StatusInternalServerError, "Could not save avatar", err)
		}
		update.Avatar = ref
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), update)
	if err != nil {
		return respondServiceError(c, "Could not update profile", err)
	}
	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"user":    user,
	})
}
