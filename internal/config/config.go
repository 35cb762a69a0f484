package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string
	LogText  bool

	// GatewayBaseURL points at the remote clinic gateway. Development
	// runs against the local API, production against the deployed one.
	GatewayBaseURL string

	// Session token storage backend: "file" (default), "redis" or "memory".
	SessionBackend string
	TokenFile      string
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool
	SessionKey     string

	// CORS origins allowed to call the view API (the widget's origin).
	CORSAllowedOrigins []string

	// ToastTTL overrides the notification display window.
	ToastTTL time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogText:            getEnvAsBool("LOG_TEXT", false),
		GatewayBaseURL:     getEnv("GATEWAY_BASE_URL", "http://localhost:8000"),
		SessionBackend:     strings.ToLower(strings.TrimSpace(getEnv("SESSION_BACKEND", "file"))),
		TokenFile:          getEnv("TOKEN_FILE", ""),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisTLS:           getEnvAsBool("REDIS_TLS", false),
		SessionKey:         getEnv("SESSION_KEY", "clinicdash:session:token"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		ToastTTL:           getEnvAsDuration("TOAST_TTL", 3*time.Second),
	}
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
