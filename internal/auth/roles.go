package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/makeup-booking/internal/domain"
	apperrors "github.com/spec-kit/makeup-booking/pkg/util"
)

// RequireAdmin ensures the principal holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
