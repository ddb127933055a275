package handlers

import (
	"errors"
	"strings"

	"trip-planner/internal/core/domain"
	"trip-planner/internal/core/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshRequest represents token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with username and password, returns a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidCredentials(c)
	}
	if err := h.validate.Struct(&req); err != nil {
		return invalidCredentials(c)
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		// Bad credentials get the same answer either way. Which field was
		// wrong is never disclosed. Anything else is a server fault.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return invalidCredentials(c)
		}
		return err
	}

	return c.JSON(result)
}

// Register handles user registration
// @Summary Register new user
// @Description Create a new account with the default USER role
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Invalid registration data")
	}

	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	if _, err := h.authService.Register(c.Context(), input); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUsername):
			return badRequest(c, "Username already exists")
		case errors.Is(err, domain.ErrDuplicateEmail):
			return badRequest(c, "Email already exists")
		default:
			return err
		}
	}

	return c.JSON(fiber.Map{"message": "User registered successfully"})
}

// Refresh handles token refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a fresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} services.AuthResponse
// @Failure 400 {object} map[string]string
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid refresh token")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Invalid refresh token")
	}

	result, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return badRequest(c, "Invalid refresh token")
	}

	return c.JSON(result)
}

func invalidCredentials(c *fiber.Ctx) error {
	return badRequest(c, "Invalid username or password")
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
