package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Browse(ctx context.Context, criteria Criteria) (Result, error)
	Create(ctx context.Context, input CreateRecordInput) (Record, error)
	Update(ctx context.Context, sku string, input UpdateRecordInput) (Record, error)
	Categories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) (string, error)
}

// Handler HTTP para inventario.
type Handler struct {
	service ServiceAPI
}

// NewHandler crea un handler de inventario.
func NewHandler(service ServiceAPI) *Handler {
	return &Handler{service: service}
}

type listing struct {
	Items      []Record `json:"items"`
	Categories []string `json:"categories"`
	Statuses   []Status `json:"statuses"`
	Query      Criteria `json:"query"`
	Summary    Summary  `json:"summary"`
}

// List maneja GET /inventory con filtros q, category y status.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	criteria := ParseCriteria(request.URL.Query())

	result, err := handler.service.Browse(request.Context(), criteria)
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, request, http.StatusOK, listing{
		Items:      result.Items,
		Categories: result.Categories,
		Statuses:   AllStatuses(),
		Query:      criteria,
		Summary:    result.Summary,
	})
}

// Create maneja POST /inventory/items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateRecordInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	record, err := handler.service.Create(request.Context(), input)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, record)
}

// Patch maneja PATCH /inventory/items/{sku}.
func (handler *Handler) Patch(writer http.ResponseWriter, request *http.Request) {
	sku := strings.TrimSpace(chi.URLParam(request, "sku"))
	if sku == "" {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_sku", "sku is required")
		return
	}

	var input UpdateRecordInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	record, err := handler.service.Update(request.Context(), sku, input)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, record)
}

// Categories maneja GET /inventory/categories.
func (handler *Handler) Categories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{"categories": categories})
}

// AddCategory maneja POST /inventory/categories.
func (handler *Handler) AddCategory(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	name, err := handler.service.AddCategory(request.Context(), input.Name)
	if err != nil {
		writeError(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, map[string]any{"name": name})
}

func writeError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "inventory item not found")
	case errors.Is(err, ErrorDuplicateSKU):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "sku already exists")
	case errors.Is(err, ErrorDuplicateCategory):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "category already exists")
	default:
		// No filtramos detalles internos.
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}
