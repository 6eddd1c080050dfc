package realtime

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const notificationPrefix = "notifications:"

func NewRedis(addr, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	slog.Info("redis client created", "addr", addr)
	return rdb
}

// Publisher pushes notifications on a per-user channel so every instance can
// forward them to its own sockets.
type Publisher struct {
	RDB redis.UniversalClient
}

func (p Publisher) Publish(ctx context.Context, userID uuid.UUID, payload []byte) error {
	return p.RDB.Publish(ctx, notificationPrefix+userID.String(), payload).Err()
}

// Relay forwards every notifications:* message to the hub until ctx is done.
func Relay(ctx context.Context, rdb redis.UniversalClient, hub *Hub) {
	sub := rdb.PSubscribe(ctx, notificationPrefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			userID, ok := userFromChannel(msg.Channel)
			if !ok {
				slog.Warn("notification on unexpected channel", "channel", msg.Channel)
				continue
			}
			hub.SendToUser(userID, []byte(msg.Payload))
		}
	}
}

func userFromChannel(channel string) (uuid.UUID, bool) {
	raw, ok := strings.CutPrefix(channel, notificationPrefix)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
