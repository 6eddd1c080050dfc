package realtime

import (
	"log/slog"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Serve runs one socket for an already authenticated user: a writer goroutine
// drains client.Send while the read loop feeds frames to the hub.
func Serve(hub *Hub, userID uuid.UUID, conn *websocket.Conn) {
	client := NewClient(userID)
	hub.RegisterClient(client)
	defer hub.UnregisterClient(client)

	go func() {
		for msg := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Debug("socket write failed", "client", client.ID, "err", err)
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			slog.Debug("socket closed", "client", client.ID, "err", err)
			return
		}
		hub.Handle(client, raw)
	}
}
