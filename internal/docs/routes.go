package docs

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta Swagger UI y la spec OpenAPI. No exigen sesión.
func RegisterRoutes(route chi.Router) {
	// /docs sin slash redirige a /docs/
	route.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/", http.StatusMovedPermanently)
	})

	route.Route("/docs", func(route chi.Router) {
		route.Get("/", SwaggerUIHandler())
		route.Get("/openapi.yaml", OpenAPIHandler())
	})
}
