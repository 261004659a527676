package inventory

import (
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Query filtra records según criteria y calcula categorías y totales.
//
// El orden de records se preserva. Las categorías salen del input completo
// (no del filtrado) y el resumen solo del subconjunto filtrado.
// Es una función pura: se puede llamar concurrentemente sin coordinación.
func Query(records []Record, criteria Criteria) Result {
	text := strings.ToLower(valueOf(criteria.Text))
	category := valueOf(criteria.Category)
	var status Status
	if criteria.Status != nil {
		status = *criteria.Status
	}

	filtered := make([]Record, 0, len(records))
	summary := Summary{TotalValue: decimal.Zero}
	seen := make(map[string]struct{})

	for _, record := range records {
		seen[record.Category] = struct{}{}

		if text != "" && !strings.Contains(strings.ToLower(record.Name)+" "+strings.ToLower(record.SKU), text) {
			continue
		}
		if category != "" && record.Category != category {
			continue
		}
		if status != "" && record.Status != status {
			continue
		}

		filtered = append(filtered, record)
		summary.TotalItems++
		summary.TotalStock += record.Stock
		if record.IsLowStock() {
			summary.LowStockCount++
		}
		summary.TotalValue = summary.TotalValue.Add(record.BuyPrice.Mul(decimal.NewFromInt(int64(record.Stock))))
	}

	categories := make([]string, 0, len(seen))
	for name := range seen {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	return Result{
		Items:      filtered,
		Categories: categories,
		Summary:    summary,
	}
}

// ParseCriteria construye Criteria desde los query params q, category y status.
// Un parámetro ausente o vacío queda como nil; los valores no se recortan.
func ParseCriteria(values url.Values) Criteria {
	var criteria Criteria
	if text := values.Get("q"); text != "" {
		criteria.Text = &text
	}
	if category := values.Get("category"); category != "" {
		criteria.Category = &category
	}
	if raw := values.Get("status"); raw != "" {
		status := Status(raw)
		criteria.Status = &status
	}
	return criteria
}

func valueOf(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
