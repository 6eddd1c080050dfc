package realtime

import (
	"encoding/json"
	"log/slog"
)

const (
	EventSetup           = "setup"
	EventConnected       = "connected"
	EventJoinChat        = "join chat"
	EventTyping          = "typing"
	EventStopTyping      = "stop typing"
	EventChatMessage     = "chat message"
	EventMessageReceived = "message received"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type chatMessage struct {
	Sender   json.RawMessage `json:"sender"`
	Receiver json.RawMessage `json:"receiver"`
	Chat     struct {
		ID string `json:"_id"`
	} `json:"chat"`
}

// Handle dispatches one inbound frame from client.
func (h *Hub) Handle(client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.Debug("malformed socket frame", "client", client.ID, "err", err)
		return
	}

	switch env.Event {
	case EventSetup:
		h.Join(client, client.UserID.String())
		h.reply(client, EventConnected, nil)

	case EventJoinChat:
		if room := roomOf(env.Data); room != "" {
			h.Join(client, room)
		}

	case EventTyping, EventStopTyping:
		if room := roomOf(env.Data); room != "" {
			h.SendToRoom(room, client.ID, Envelope{Event: env.Event})
		}

	case EventChatMessage:
		var msg chatMessage
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			slog.Debug("malformed chat message", "client", client.ID, "err", err)
			return
		}
		if isEmpty(msg.Sender) || isEmpty(msg.Receiver) {
			slog.Debug("chat message without sender or receiver", "client", client.ID)
			return
		}
		h.SendToRoom(msg.Chat.ID, client.ID, Envelope{Event: EventMessageReceived, Data: env.Data})

	default:
		slog.Debug("unknown socket event", "event", env.Event)
	}
}

func (h *Hub) reply(client *Client, event string, data json.RawMessage) {
	b, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[client.ID]; ok {
		deliver(client, b)
	}
}

// roomOf accepts either a bare string or an object carrying _id.
func roomOf(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.ID
	}
	return ""
}

func isEmpty(v json.RawMessage) bool {
	s := string(v)
	return s == "" || s == "null" || s == `""`
}
