package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once from the environment at
// startup. A .env file is loaded before this runs (see cmd/api).
type Config struct {
	Server    ServerConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	DynamoDB  DynamoDBConfig
}

type ServerConfig struct {
	Port      string
	GinMode   string
	ClientURL string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// RateLimitConfig allows Max requests per Window for each client IP.
type RateLimitConfig struct {
	Window time.Duration
	Max    int
}

type LogConfig struct {
	Level  string
	Format string
}

type DynamoDBConfig struct {
	AutoCreateTables bool
}

const defaultJWTSecret = "vermafarm-dev-secret-change-me"

// Load reads the configuration from environment variables.
//
// Supported env vars:
//   - PORT (default: 5000), GIN_MODE (default: debug)
//   - CLIENT_URL (default: http://localhost:3000), comma separated for several origins
//   - JWT_SECRET, JWT_EXPIRE (Go duration or "<n>d", default: 30d)
//   - RATE_LIMIT_WINDOW_MS (default: 900000), RATE_LIMIT_MAX_REQUESTS (default: 100)
//   - LOG_LEVEL (default: info), LOG_FORMAT (json|text, default: json)
//   - DYNAMODB_AUTO_CREATE (default: false)
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:      getenvDefault("PORT", "5000"),
			GinMode:   getenvDefault("GIN_MODE", "debug"),
			ClientURL: getenvDefault("CLIENT_URL", "http://localhost:3000"),
		},
		JWT: JWTConfig{
			Secret: getenvDefault("JWT_SECRET", defaultJWTSecret),
			Expiry: getenvDuration("JWT_EXPIRE", 30*24*time.Hour),
		},
		RateLimit: RateLimitConfig{
			Window: time.Duration(getenvInt("RATE_LIMIT_WINDOW_MS", 15*60*1000)) * time.Millisecond,
			Max:    getenvInt("RATE_LIMIT_MAX_REQUESTS", 100),
		},
		Log: LogConfig{
			Level:  getenvDefault("LOG_LEVEL", "info"),
			Format: getenvDefault("LOG_FORMAT", "json"),
		},
		DynamoDB: DynamoDBConfig{
			AutoCreateTables: getenvBool("DYNAMODB_AUTO_CREATE", false),
		},
	}
}

// AllowedOrigins splits CLIENT_URL into the CORS origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.ClientURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (j JWTConfig) UsesDefaultSecret() bool {
	return j.Secret == defaultJWTSecret
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// getenvDuration accepts Go durations ("12h") and whole days ("30d").
func getenvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	return def
}
