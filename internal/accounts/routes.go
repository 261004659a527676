package accounts

import (
	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/backoffice-api-golang/internal/session"
)

// RegisterRoutes registra rutas de autenticación.
// Solo logout exige sesión.
func RegisterRoutes(route chi.Router, handler *Handler, authenticator *session.Authenticator) {
	route.Get("/", handler.Root)
	route.Route("/auth", func(route chi.Router) {
		route.Post("/register", handler.Register)
		route.Post("/login", handler.Login)
		route.Post("/logout", authenticator.WithIdentity(handler.Logout))
	})
}
