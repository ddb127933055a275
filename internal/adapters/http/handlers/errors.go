package handlers

import (
	"errors"

	"trip-planner/internal/adapters/http/middleware"
	"trip-planner/internal/core/domain"
	"trip-planner/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleDomainError maps domain sentinels to HTTP responses. Anything
// unmapped bubbles up to the app error handler as a 500.
func handleDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return middleware.Unauthorized(c)
	case errors.Is(err, domain.ErrAccessDenied):
		return middleware.Forbidden(c)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTripNotFound),
		errors.Is(err, domain.ErrItineraryItemNotFound),
		errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidImage),
		errors.Is(err, domain.ErrRoleInUse),
		errors.Is(err, domain.ErrRoleExists):
		return response.BadRequest(c, err.Error())
	default:
		return err
	}
}
