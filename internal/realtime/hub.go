package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte

	rooms map[string]struct{}
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, 256),
		rooms:  make(map[string]struct{}),
	}
}

// Hub tracks connected sockets and the rooms they joined. Rooms are plain
// strings: a user id for the personal room, a chat id for conversations.
type Hub struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	register   chan registration
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan registration),
		unregister: make(chan *Client),
	}
}

type registration struct {
	client *Client
	done   chan struct{}
}

// RegisterClient returns once the client is tracked, so frames read right
// after it can join rooms.
func (h *Hub) RegisterClient(client *Client) {
	done := make(chan struct{})
	h.register <- registration{client: client, done: done}
	<-done
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (h *Hub) Join(client *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[room] = members
	}
	members[client.ID] = client
	client.rooms[room] = struct{}{}
}

// SendToRoom delivers to every member of room except the client with id
// except (empty to include everyone).
func (h *Hub) SendToRoom(room, except string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.Error("could not encode socket message", "room", room, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, client := range h.rooms[room] {
		if id == except {
			continue
		}
		deliver(client, payload)
	}
}

// SendToUser delivers raw JSON to every socket the user has open on this
// instance.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserID == userID {
			deliver(client, payload)
		}
	}
}

// Connected reports how many sockets are registered.
func (h *Hub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func deliver(client *Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		// slow consumer, drop rather than block the hub
		slog.Warn("dropping socket message", "client", client.ID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.mu.Lock()
			h.clients[reg.client.ID] = reg.client
			h.mu.Unlock()
			close(reg.done)
			slog.Debug("socket registered", "client", reg.client.ID, "user", reg.client.UserID)

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				for room := range old.rooms {
					delete(h.rooms[room], client.ID)
					if len(h.rooms[room]) == 0 {
						delete(h.rooms, room)
					}
				}
				close(old.Send)
				slog.Debug("socket unregistered", "client", client.ID)
			}
			h.mu.Unlock()
		}
	}
}
