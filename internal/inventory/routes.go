package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registra rutas de inventario detrás del middleware de sesión.
func RegisterRoutes(route chi.Router, handler *Handler, requireSession func(http.Handler) http.Handler) {
	route.Route("/inventory", func(route chi.Router) {
		route.Use(requireSession)
		route.Get("/", handler.List)
		route.Post("/items", handler.Create)
		route.Patch("/items/{sku}", handler.Patch)
		route.Get("/categories", handler.Categories)
		route.Post("/categories", handler.AddCategory)
	})
}
