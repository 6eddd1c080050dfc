package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/freelance")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("OTP_TTL_MIN", "not-a-number")

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 10080, cfg.JWTExpiresMin)
	assert.Equal(t, 10, cfg.OTPTTLMin)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/freelance")
	t.Setenv("JWT_SECRET", "")

	assert.PanicsWithValue(t, "missing env: JWT_SECRET", func() { Load() })
}

func TestOrigins(t *testing.T) {
	cfg := Config{CORSOrigins: " http://a.test ,, http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}
