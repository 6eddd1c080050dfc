package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles lets through users whose role is one of allowed. It must run
// after AttachJWTLocals.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
