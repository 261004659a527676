package suppliers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
type ServiceAPI interface {
	List(ctx context.Context, search string) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Create(ctx context.Context, input CreateSupplierInput) (Supplier, error)
	Update(ctx context.Context, id string, input UpdateSupplierInput) (Supplier, error)
	Delete(ctx context.Context, id string) error
}

// Handler HTTP para proveedores.
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de proveedores.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

// List maneja GET /suppliers?query=
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	search := request.URL.Query().Get("query")

	suppliers, err := handler.service.List(request.Context(), search)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"items": suppliers,
		"query": search,
	})
}

// Create maneja POST /suppliers.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateSupplierInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	supplier, err := handler.service.Create(request.Context(), input)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, supplier)
}

// GetByID maneja GET /suppliers/{id}.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	supplier, err := handler.service.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, supplier)
}

// Patch maneja PATCH /suppliers/{id}.
func (handler *Handler) Patch(writer http.ResponseWriter, request *http.Request) {
	var input UpdateSupplierInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	supplier, err := handler.service.Update(request.Context(), chi.URLParam(request, "id"), input)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, supplier)
}

// Delete maneja DELETE /suppliers/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), chi.URLParam(request, "id")); err != nil {
		writeError(writer, request, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func writeError(writer http.ResponseWriter, request *http.Request, err error) {
	var validationError *ValidationError
	switch {
	case errors.As(err, &validationError):
		httpx.FailFields(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data", validationError.Fields)
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "supplier not found")
	case errors.Is(err, ErrorDuplicateID):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "supplier id already exists")
	default:
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
