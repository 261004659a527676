package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/backoffice-api-golang/internal/session"
)

// RegisterRoutes registra el dashboard. Exige sesión.
func RegisterRoutes(route chi.Router, handler *Handler, authenticator *session.Authenticator) {
	route.Get("/dashboard", authenticator.WithIdentity(handler.Overview))
}
