package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkwell-app/inkwell/internal/pkg/identity"
)

// RequireAuth wraps an API handler that needs the identity object itself.
// It resolves independently of the access gate, so a handler stays guarded
// even if mounted on a path the policy table calls public.
func RequireAuth(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := identity.FromCtx(c)
		if id == nil {
			id = identity.Resolve(c)
		}
		if id == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		c.Locals(identity.LocalsKey, id)
		return handler(c)
	}
}

// RequireVerified additionally demands a verified email. A resolved but
// unverified identity may read, never write.
func RequireVerified(handler fiber.Handler) fiber.Handler {
	return RequireAuth(func(c *fiber.Ctx) error {
		if !identity.FromCtx(c).Verified {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Email verification required",
			})
		}
		return handler(c)
	})
}
