package notification

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
)

type Store interface {
	Create(ctx context.Context, n *models.Notification) error
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	ListUnread(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
}

// Publisher fans a notification out to every instance holding a socket for
// the user.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, payload []byte) error
}

type Service struct {
	store Store
	pub   Publisher
}

func NewService(store Store, pub Publisher) *Service {
	return &Service{store: store, pub: pub}
}

// Notify records a notification and pushes it to the recipient. Failures are
// logged and never returned: notifications are not part of the caller's
// success path.
func (s *Service) Notify(ctx context.Context, triggeredBy, notify uuid.UUID, message string, typ models.NotificationType, meta any) {
	n := &models.Notification{
		TriggeredByID: triggeredBy,
		NotifyID:      notify,
		Message:       message,
		Type:          typ,
	}
	if meta != nil {
		if b, err := json.Marshal(meta); err == nil {
			n.Meta = b
		}
	}

	if err := s.store.Create(ctx, n); err != nil {
		slog.Error("could not store notification", "notify", notify, "type", typ, "err", err)
		return
	}
	if s.pub == nil {
		return
	}

	b, err := json.Marshal(map[string]any{"event": "notification", "data": n})
	if err != nil {
		slog.Error("could not encode notification", "id", n.ID, "err", err)
		return
	}
	if err := s.pub.Publish(ctx, notify, b); err != nil {
		slog.Warn("could not publish notification", "id", n.ID, "err", err)
	}
}

func (s *Service) ReadNotification(ctx context.Context, id, userID uuid.UUID) response.Result {
	if err := s.store.MarkRead(ctx, id, userID); err != nil {
		return response.FromError(err)
	}
	return response.OK("Notification read", nil)
}

func (s *Service) Unread(ctx context.Context, userID uuid.UUID) response.Result {
	list, err := s.store.ListUnread(ctx, userID)
	if err != nil {
		return response.FromError(err)
	}
	if list == nil {
		list = []models.Notification{}
	}
	return response.OK("Notifications", response.Payload{"notifications": list})
}
