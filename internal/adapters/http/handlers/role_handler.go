package handlers

import (
	"trip-planner/internal/core/services"
	"trip-planner/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RoleHandler handles role administration endpoints
type RoleHandler struct {
	roleService *services.RoleService
	validate    *validator.Validate
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		validate:    validator.New(),
	}
}

// RoleRequest represents role creation/update request body
type RoleRequest struct {
	Name        string `json:"name" validate:"required,oneof=USER ADMIN MODERATOR"`
	Description string `json:"description"`
}

// List lists all roles
// @Summary List roles
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /roles [get]
func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Roles retrieved", roles)
}

// Get gets a role by ID
// @Summary Get role
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	role, err := h.roleService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Role retrieved", role)
}

// Create creates a role
// @Summary Create role
// @Tags Roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RoleRequest true "Role data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /roles [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	req, err := h.parseRole(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	role, err := h.roleService.Create(c.Context(), &services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Created(c, "Role created", role)
}

// Update updates a role
// @Summary Update role
// @Tags Roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param body body RoleRequest true "Role data"
// @Success 200 {object} response.Response
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	req, err := h.parseRole(c)
	if err != nil {
		return handleDomainError(c, err)
	}

	role, err := h.roleService.Update(c.Context(), id, &services.RoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Role updated", role)
}

// Delete deletes a role. Roles still assigned to users are refused.
// @Summary Delete role
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	if err := h.roleService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Role deleted", nil)
}

// AssignToUser assigns a role to a user
// @Summary Assign role to user
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /roles/{id}/users/{userId} [post]
func (h *RoleHandler) AssignToUser(c *fiber.Ctx) error {
	roleID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.roleService.AssignToUser(c.Context(), userID, roleID); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Role assigned", nil)
}

// RemoveFromUser removes a role from a user
// @Summary Remove role from user
// @Tags Roles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Role ID"
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Router /roles/{id}/users/{userId} [delete]
func (h *RoleHandler) RemoveFromUser(c *fiber.Ctx) error {
	roleID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}
	userID, err := parseID(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if err := h.roleService.RemoveFromUser(c.Context(), userID, roleID); err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Role removed", nil)
}

func (h *RoleHandler) parseRole(c *fiber.Ctx) (*RoleRequest, error) {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid role data")
	}
	return &req, nil
}
