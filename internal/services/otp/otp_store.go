package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

const (
	codeLength  = 6
	maxAttempts = 5
)

var ErrRateLimited = errors.New("otp requested too often")

// INCR + PEXPIRE in one round trip; returns 0 once the window's limit is hit.
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

// Store keeps one-time codes in redis under a TTL. At most limit codes per
// email may be issued within window.
type Store struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	limit  int
	window time.Duration
	script *redis.Script
}

func NewStore(rdb redis.UniversalClient, ttl time.Duration, limit int, window time.Duration) *Store {
	return &Store{
		rdb:    rdb,
		ttl:    ttl,
		limit:  limit,
		window: window,
		script: redis.NewScript(rateLimitScript),
	}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func codeKey(p Purpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", p, strings.ToLower(email))
}

func attemptsKey(p Purpose, email string) string {
	return codeKey(p, email) + ":attempts"
}

func limitKey(email string) string {
	return "otp:rl:" + strings.ToLower(email)
}

func generateCode() (string, error) {
	max := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(codeLength), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeLength, v.Int64()), nil
}

func (s *Store) allow(ctx context.Context, email string) (bool, error) {
	if s.limit <= 0 || s.window <= 0 {
		return true, nil
	}
	ttl := s.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ok, err := s.script.Run(ctx, s.rdb, []string{limitKey(email)}, ttl, s.limit).Int64()
	if err != nil {
		return false, errors.Wrap(err, "otp rate limit")
	}
	return ok == 1, nil
}

// Issue creates a fresh code for email, replacing any previous one.
func (s *Store) Issue(ctx context.Context, p Purpose, email string) (string, error) {
	ok, err := s.allow(ctx, email)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRateLimited
	}

	code, err := generateCode()
	if err != nil {
		return "", errors.Wrap(err, "generate otp")
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, codeKey(p, email), code, s.ttl)
	pipe.Del(ctx, attemptsKey(p, email))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", errors.Wrap(err, "store otp")
	}
	return code, nil
}

// Verify consumes the code on success. A code is burned after maxAttempts
// wrong guesses.
func (s *Store) Verify(ctx context.Context, p Purpose, email, code string) (bool, error) {
	key := codeKey(p, email)
	stored, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "load otp")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(strings.TrimSpace(code))) == 1 {
		if err := s.rdb.Del(ctx, key, attemptsKey(p, email)).Err(); err != nil {
			return false, errors.Wrap(err, "consume otp")
		}
		return true, nil
	}

	n, err := s.rdb.Incr(ctx, attemptsKey(p, email)).Result()
	if err != nil {
		return false, errors.Wrap(err, "count otp attempts")
	}
	if n == 1 {
		s.rdb.Expire(ctx, attemptsKey(p, email), s.ttl)
	}
	if n >= maxAttempts {
		s.rdb.Del(ctx, key, attemptsKey(p, email))
	}
	return false, nil
}
