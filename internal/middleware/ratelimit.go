package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Windi-Fikriyansyah/freelance_be/internal/apperr"
	"github.com/Windi-Fikriyansyah/freelance_be/internal/response"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type RedisLimiter struct {
	client redis.UniversalClient
	script *redis.Script
}

func NewRedisLimiter(client redis.UniversalClient) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow fails open: a redis outage must not lock everybody out.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil || key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		slog.Warn("rate limiter unavailable", "key", key, "err", err)
		return true
	}
	return allowed == 1
}

// RateLimit allows limit requests per window for each client IP under name.
func RateLimit(l Limiter, name string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "rl:" + name + ":" + c.IP()
		if !l.Allow(c.UserContext(), key, limit, window) {
			res := response.FromError(apperr.ErrRateLimited)
			return c.Status(res.Status).JSON(res)
		}
		return c.Next()
	}
}
