package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CurrentUser returns the authenticated user id set by AttachJWTLocals.
func CurrentUser(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := c.Locals("userId").(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
