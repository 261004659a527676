package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultPort       = "8080"
	defaultSessionTTL = 12 * time.Hour
	defaultRedisAddr  = "localhost:6379"
	defaultLogLevel   = "info"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret  string
	SessionTTL time.Duration

	RedisAddr     string
	RedisPassword string

	AllowedOrigins []string

	LogLevel    string
	Development bool
}

// Load lee variables de entorno y valida lo mínimo indispensable.
func Load() (Config, error) {
	port := env("PORT", defaultPort)
	// Normalizamos por si alguien manda ":8080"
	port = strings.TrimPrefix(port, ":")

	databaseURL := env("DATABASE_URL", "")
	if databaseURL == "" {
		return Config{}, fmt.Errorf("missing required env var: DATABASE_URL")
	}

	jwtSecret := env("JWT_SECRET", "")
	if jwtSecret == "" {
		return Config{}, fmt.Errorf("missing required env var: JWT_SECRET")
	}

	sessionTTL := defaultSessionTTL
	if raw := env("SESSION_TTL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_TTL %q: must be a positive duration", raw)
		}
		sessionTTL = parsed
	}

	return Config{
		Port:           port,
		DatabaseURL:    databaseURL,
		JWTSecret:      jwtSecret,
		SessionTTL:     sessionTTL,
		RedisAddr:      env("REDIS_ADDR", defaultRedisAddr),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins: splitList(env("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       strings.ToLower(env("LOG_LEVEL", defaultLogLevel)),
		Development:    strings.EqualFold(env("APP_ENV", ""), "development"),
	}, nil
}

func env(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	values := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
