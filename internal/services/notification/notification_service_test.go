package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/models"
)

type memStore struct {
	items []*models.Notification
	err   error
}

func (m *memStore) Create(_ context.Context, n *models.Notification) error {
	if m.err != nil {
		return m.err
	}
	n.ID = uuid.New()
	m.items = append(m.items, n)
	return nil
}

func (m *memStore) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, n := range m.items {
		if n.ID == id && n.NotifyID == userID {
			n.IsRead = true
			return nil
		}
	}
	return apperr.NewNotFound("Notification not found")
}

func (m *memStore) ListUnread(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.items {
		if n.NotifyID == userID && !n.IsRead {
			out = append(out, *n)
		}
	}
	return out, nil
}

type memPub struct {
	sent map[uuid.UUID][][]byte
	err  error
}

func (m *memPub) Publish(_ context.Context, userID uuid.UUID, payload []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.sent == nil {
		m.sent = map[uuid.UUID][][]byte{}
	}
	m.sent[userID] = append(m.sent[userID], payload)
	return nil
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	store, pub := &memStore{}, &memPub{}
	svc := NewService(store, pub)
	from, to := uuid.New(), uuid.New()

	svc.Notify(context.Background(), from, to, "Got a Review", models.NotificationReview, map[string]int{"rating": 4})

	require.Len(t, store.items, 1)
	assert.Equal(t, models.NotificationReview, store.items[0].Type)
	assert.JSONEq(t, `{"rating":4}`, string(store.items[0].Meta))

	require.Len(t, pub.sent[to], 1)
	var msg struct {
		Event string              `json:"event"`
		Data  models.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(pub.sent[to][0], &msg))
	assert.Equal(t, "notification", msg.Event)
	assert.Equal(t, "Got a Review", msg.Data.Message)
}

func TestNotifySwallowsFailures(t *testing.T) {
	pub := &memPub{}
	svc := NewService(&memStore{err: errors.New("db down")}, pub)
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), uuid.New(), uuid.New(), "x", models.NotificationHired, nil)
	})
	assert.Empty(t, pub.sent)

	svc = NewService(&memStore{}, &memPub{err: errors.New("redis down")})
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), uuid.New(), uuid.New(), "x", models.NotificationHired, nil)
	})
}

func TestReadNotification(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, nil)
	user := uuid.New()
	svc.Notify(context.Background(), uuid.New(), user, "hello", models.NotificationApplication, nil)
	id := store.items[0].ID

	assert.Equal(t, http.StatusNotFound, svc.ReadNotification(context.Background(), id, uuid.New()).Status)
	assert.Equal(t, http.StatusOK, svc.ReadNotification(context.Background(), id, user).Status)

	res := svc.Unread(context.Background(), user)
	assert.Equal(t, []models.Notification{}, res.Get("notifications"))
}
