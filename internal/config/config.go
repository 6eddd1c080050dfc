package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppPort       string
	DBDSN         string
	JWTSecret     string
	JWTExpiresMin int

	RedisAddr     string
	RedisPassword string

	CORSOrigins  string
	SocketOrigin string

	GoogleClientID  string
	GoogleSecret    string
	GoogleRedirect  string
	FrontendBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	OTPTTLMin    int
	OTPRateLimit int
	// requests per minute per client IP on the public auth routes
	AuthRateLimit int
}

func Load() Config {
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DBDSN:         must("DB_DSN"),
		JWTSecret:     must("JWT_SECRET"),
		JWTExpiresMin: getInt("JWT_EXPIRES_MIN", 10080),

		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),

		CORSOrigins:  get("CORS_ORIGINS", "http://127.0.0.1:3000, http://localhost:3000"),
		SocketOrigin: get("SOCKET_ORIGIN", "http://localhost:3000"),

		GoogleClientID:  get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:    get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect:  get("GOOGLE_REDIRECT_URL", ""),
		FrontendBaseURL: get("FRONTEND_BASE_URL", "http://localhost:3000"),

		SMTPHost:     get("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 465),
		SMTPUsername: get("SMTP_USERNAME", ""),
		SMTPPassword: get("SMTP_PASSWORD", ""),
		SMTPFrom:     get("SMTP_FROM", ""),

		OTPTTLMin:     getInt("OTP_TTL_MIN", 10),
		OTPRateLimit:  getInt("OTP_RATE_LIMIT", 5),
		AuthRateLimit: getInt("AUTH_RATE_LIMIT", 30),
	}
}

// Origins splits CORSOrigins on commas, dropping blanks.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(get(k, ""))
	if err != nil {
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
