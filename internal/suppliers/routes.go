package suppliers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas de proveedores detrás del middleware de sesión.
func RegisterRoutes(route chi.Router, handler *Handler, requireSession func(http.Handler) http.Handler) {
	route.Route("/suppliers", func(route chi.Router) {
		route.Use(requireSession)
		route.Get("/", handler.List)
		route.Post("/", handler.Create)
		route.Get("/{id}", handler.GetByID)
		route.Patch("/{id}", handler.Patch)
		route.Delete("/{id}", handler.Delete)
	})
}
