package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/realtime"
)

type SocketHandler struct {
	Hub *realtime.Hub
}

// Upgrade must run after the JWT middleware; it hands the user id to the
// socket through locals.
func (h *SocketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	uid, ok := middleware.CurrentUser(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	c.Locals("socketUser", uid.String())
	return c.Next()
}

func (h *SocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		raw, _ := conn.Locals("socketUser").(string)
		uid, ok := parseID(raw)
		if !ok {
			_ = conn.Close()
			return
		}
		realtime.Serve(h.Hub, uid, conn)
	})
}
