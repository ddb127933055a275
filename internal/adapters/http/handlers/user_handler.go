package handlers

import (
	"trip-planner/internal/core/services"
	"trip-planner/internal/pkg/pagination"
	"trip-planner/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List lists users with pagination
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} pagination.Response
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, meta, err := h.userService.List(c.Context(), params)
	if err != nil {
		return handleDomainError(c, err)
	}

	return c.JSON(pagination.Response{
		Data: users,
		Meta: meta,
	})
}

// Get gets a user by ID
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "User retrieved", user)
}
