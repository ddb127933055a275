package middleware

import (
	"errors"
	"log"
	"strings"

	"trip-planner/internal/core/authz"
	"trip-planner/internal/core/domain"
	"trip-planner/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

const (
	principalKey = "principal"
	resolvedKey  = "auth_resolved"
)

// authErrorBody is the single shape every 401 response uses
type authErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// Authenticate resolves the request's principal from the Authorization
// header. Resolution failures never reject the request here; the request
// simply continues without a principal and the route class decides later.
// Running the middleware twice on one request is a no-op.
func Authenticate(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(resolvedKey) != nil {
			return c.Next()
		}
		c.Locals(resolvedKey, true)

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Next()
		}

		token := strings.TrimPrefix(header, "Bearer ")
		principal, err := authService.ResolvePrincipal(c.Context(), token)
		if err != nil {
			log.Printf("❌ Token rejected on %s: %v", c.Path(), err)
			return c.Next()
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the request's principal, or nil when unauthenticated
func PrincipalFrom(c *fiber.Ctx) *authz.Principal {
	if p, ok := c.Locals(principalKey).(*authz.Principal); ok {
		return p
	}
	return nil
}

// RequireAuth rejects requests that carry no principal
func RequireAuth() fiber.Handler {
	return requireClass(authz.Authenticated())
}

// RequireRoles rejects requests whose principal holds none of the given roles
func RequireRoles(roles ...string) fiber.Handler {
	return requireClass(authz.AnyRole(roles...))
}

func requireClass(class authz.RouteClass) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := authz.Permit(PrincipalFrom(c), class)
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return Unauthorized(c)
		case errors.Is(err, domain.ErrAccessDenied):
			return Forbidden(c)
		case err != nil:
			return err
		}
		return c.Next()
	}
}

// Unauthorized sends the uniform 401 body. Every authentication failure,
// whatever its cause, produces exactly this response.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(authErrorBody{
		Error:   "Unauthorized",
		Message: "Full authentication is required to access this resource",
		Path:    c.Path(),
	})
}

// Forbidden sends a 403 without naming the resource or the missing role
func Forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(authErrorBody{
		Error:   "Forbidden",
		Message: "Access denied",
		Path:    c.Path(),
	})
}
