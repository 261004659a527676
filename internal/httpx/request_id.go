package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDFrom devuelve el request id que asignó middleware.RequestID.
// Fuera del middleware (tests, handlers sueltos) cae al header del cliente.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	if id := middleware.GetReqID(request.Context()); id != "" {
		return id
	}
	return request.Header.Get(middleware.RequestIDHeader)
}
