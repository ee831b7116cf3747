package handlers

import (
	"log"

	"tienda/internal/middleware"
	"tienda/internal/models"
	"tienda/internal/services"
	"tienda/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration, login, and profiles.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validation.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// authRequired guards the routes that need a live bearer token.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", authRequired, h.HandleLogout)
	authRoutes.Get("/profile", authRequired, h.HandleGetProfile)
	authRoutes.Put("/profile", authRequired, h.HandleUpdateProfile)
	authRoutes.Patch("/profile", authRequired, h.HandleUpdateProfile)
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is the payload for a partial profile update.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// HandleRegister registers a new user. Registration does not log the user
// in; no token is issued here.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, validation.Messages(err))
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.Register(user); err != nil {
		return respondServiceError(c, err, "User not found", "Could not register user")
	}
	return respondSuccess(c, fiber.StatusCreated, "User registered successfully", nil)
}

// HandleLogin verifies credentials and returns a fresh bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, validation.Messages(err))
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondServiceError(c, err, "User not found", "Could not log in")
	}
	return respondSuccess(c, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
	})
}

// HandleLogout revokes the token presented on this request.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token, _ := c.Locals(middleware.TokenContextKey).(string)
	if err := h.authService.RevokeToken(token); err != nil {
		return respondServiceError(c, err, "User not found", "Could not log out")
	}
	return respondSuccess(c, fiber.StatusOK, "Logged out successfully", nil)
}

// HandleGetProfile returns the authenticated user. The password hash is
// excluded from serialization by the model.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.UserContextKey).(*models.User)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}
	return respondSuccess(c, fiber.StatusOK, "Profile retrieved successfully", user)
}

// HandleUpdateProfile merges the supplied name/email onto the authenticated
// user. The password is not modifiable through this endpoint.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	user, ok := c.Locals(middleware.UserContextKey).(*models.User)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update profile request body: %v", err)
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, validation.Messages(err))
	}

	updated, err := h.authService.UpdateProfile(user, services.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return respondServiceError(c, err, "User not found", "Could not update profile")
	}
	return respondSuccess(c, fiber.StatusOK, "Profile updated successfully", updated)
}
