package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status es el estado comercial de un item de inventario.
type Status string

const (
	StatusActive     Status = "Active"
	StatusInactive   Status = "Inactive"
	StatusOutOfStock Status = "OutOfStock"
)

// AllStatuses devuelve los estados conocidos en el orden que muestra el listado.
func AllStatuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusOutOfStock}
}

// Valid indica si el estado es uno de los conocidos.
func (status Status) Valid() bool {
	switch status {
	case StatusActive, StatusInactive, StatusOutOfStock:
		return true
	}
	return false
}

// Record representa un item de inventario.
// Los precios usan decimal para no perder precisión con float.
type Record struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"min_stock"`
	Unit      string          `json:"unit"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLowStock indica si el stock está en o por debajo del punto de reposición.
func (record Record) IsLowStock() bool {
	return record.Stock <= record.MinStock
}

// Criteria agrupa los filtros opcionales del listado.
// nil significa "sin filtro".
type Criteria struct {
	Text     *string `json:"q,omitempty"`
	Category *string `json:"category,omitempty"`
	Status   *Status `json:"status,omitempty"`
}

// Summary son los totales calculados sobre los registros filtrados.
type Summary struct {
	TotalItems    int             `json:"total_items"`
	TotalStock    int             `json:"total_stock"`
	LowStockCount int             `json:"low_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// Result es la salida de Query.
type Result struct {
	Items      []Record `json:"items"`
	Categories []string `json:"categories"`
	Summary    Summary  `json:"summary"`
}

// CreateRecordInput es el payload para crear un item.
// Los precios llegan como string para validarlos sin pasar por float.
type CreateRecordInput struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
	Unit      string `json:"unit"`
	BuyPrice  string `json:"buy_price"`
	SellPrice string `json:"sell_price"`
	Status    Status `json:"status"`
}

// UpdateRecordInput es un update parcial: solo se tocan los campos no nil.
type UpdateRecordInput struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Stock     *int    `json:"stock"`
	MinStock  *int    `json:"min_stock"`
	Unit      *string `json:"unit"`
	BuyPrice  *string `json:"buy_price"`
	SellPrice *string `json:"sell_price"`
	Status    *Status `json:"status"`
}

func (input UpdateRecordInput) empty() bool {
	return input.Name == nil && input.Category == nil && input.Stock == nil && input.MinStock == nil &&
		input.Unit == nil && input.BuyPrice == nil && input.SellPrice == nil && input.Status == nil
}
