// Package dashboard expone el resumen de inicio para el usuario logueado.
package dashboard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-api-golang/internal/httpx"
	"github.com/Lelo88/backoffice-api-golang/internal/inventory"
	"github.com/Lelo88/backoffice-api-golang/internal/session"
)

// InventoryBrowser es lo único que el dashboard necesita de inventario.
type InventoryBrowser interface {
	Browse(ctx context.Context, criteria inventory.Criteria) (inventory.Result, error)
}

// Handler HTTP del dashboard.
type Handler struct {
	inventory InventoryBrowser
	logger    *zap.Logger
}

// NewHandler crea un handler de dashboard.
func NewHandler(inventory InventoryBrowser, logger *zap.Logger) *Handler {
	return &Handler{inventory: inventory, logger: logger}
}

// Overview es la respuesta de GET /dashboard.
type Overview struct {
	Username      string             `json:"username"`
	Inventory     inventory.Summary  `json:"inventory"`
	LowStockItems []inventory.Record `json:"low_stock_items"`
	Categories    []string           `json:"categories"`
}

// Overview maneja GET /dashboard. Los totales salen del inventario completo.
func (handler *Handler) Overview(writer http.ResponseWriter, request *http.Request, identity session.Identity) {
	result, err := handler.inventory.Browse(request.Context(), inventory.Criteria{})
	if err != nil {
		handler.logger.Error("dashboard inventory", zap.Error(err), zap.String("user_id", identity.UserID))
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	lowStock := make([]inventory.Record, 0)
	for _, record := range result.Items {
		if record.IsLowStock() {
			lowStock = append(lowStock, record)
		}
	}

	httpx.OK(writer, request, http.StatusOK, Overview{
		Username:      identity.Username,
		Inventory:     result.Summary,
		LowStockItems: lowStock,
		Categories:    result.Categories,
	})
}
