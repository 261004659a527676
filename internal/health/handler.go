package health

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
)

const readyTimeout = 2 * time.Second

// Pinger es cualquier dependencia que sepa responder un ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapta una función a Pinger (ej: el cliente de Redis).
type PingFunc func(ctx context.Context) error

func (ping PingFunc) Ping(ctx context.Context) error {
	return ping(ctx)
}

// Handler encapsula endpoints de health.
type Handler struct {
	database Pinger
	sessions Pinger
	logger   *zap.Logger
}

// New crea un handler de health. sessions es opcional.
func New(database Pinger, sessions Pinger, logger *zap.Logger) *Handler {
	return &Handler{database: database, sessions: sessions, logger: logger}
}

// Health indica si el proceso está vivo.
// NO chequea dependencias. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si la app puede atender tráfico: Postgres y, si está configurado, Redis.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.database == nil {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := handler.database.Ping(ctx); err != nil {
		handler.logger.Warn("readiness check failed", zap.String("dependency", "postgres"), zap.Error(err))
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
		return
	}

	if handler.sessions != nil {
		if err := handler.sessions.Ping(ctx); err != nil {
			handler.logger.Warn("readiness check failed", zap.String("dependency", "redis"), zap.Error(err))
			httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "session store is not reachable")
			return
		}
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{"status": "ready"})
}
