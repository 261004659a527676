package inventory

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput      = errors.New("invalid input")
	ErrorNotFound          = errors.New("inventory item not found")
	ErrorDuplicateSKU      = errors.New("duplicate sku")
	ErrorDuplicateCategory = errors.New("duplicate category")
)

const maxCategoryLength = 100

// RepositoryAPI define lo que el service necesita de persistencia.
type RepositoryAPI interface {
	ListAll(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, input CreateRecordInput) (Record, error)
	Update(ctx context.Context, sku string, input UpdateRecordInput) (Record, error)
	ListCategories(ctx context.Context) ([]string, error)
	InsertCategory(ctx context.Context, name string) (string, error)
}

// Service contiene las reglas de negocio de inventario.
type Service struct {
	repository RepositoryAPI
}

// NewService crea un service de inventario.
func NewService(repository RepositoryAPI) *Service {
	return &Service{repository: repository}
}

// Browse carga el inventario completo y lo pasa por Query.
func (service *Service) Browse(ctx context.Context, criteria Criteria) (Result, error) {
	records, err := service.repository.ListAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Query(records, criteria), nil
}

// Create valida y da de alta un item.
func (service *Service) Create(ctx context.Context, input CreateRecordInput) (Record, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Unit = strings.TrimSpace(input.Unit)

	if input.SKU == "" || input.Name == "" || input.Category == "" || input.Unit == "" {
		return Record{}, ErrorInvalidInput
	}
	if input.Stock < 0 || input.MinStock < 0 {
		return Record{}, ErrorInvalidInput
	}

	var ok bool
	if input.BuyPrice, ok = normalizePrice(input.BuyPrice); !ok {
		return Record{}, ErrorInvalidInput
	}
	if input.SellPrice, ok = normalizePrice(input.SellPrice); !ok {
		return Record{}, ErrorInvalidInput
	}

	if input.Status == "" {
		input.Status = StatusActive
	}
	if !input.Status.Valid() {
		return Record{}, ErrorInvalidInput
	}

	record, err := service.repository.Insert(ctx, input)
	if err != nil {
		if errors.Is(err, ErrorDuplicateSKU) {
			return Record{}, ErrorDuplicateSKU
		}
		return Record{}, err
	}

	return record, nil
}

// Update valida y aplica un update parcial sobre el item sku.
func (service *Service) Update(ctx context.Context, sku string, input UpdateRecordInput) (Record, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" || input.empty() {
		return Record{}, ErrorInvalidInput
	}

	for _, field := range []**string{&input.Name, &input.Category, &input.Unit} {
		if *field == nil {
			continue
		}
		value := strings.TrimSpace(**field)
		if value == "" {
			return Record{}, ErrorInvalidInput
		}
		*field = &value
	}

	if input.Stock != nil && *input.Stock < 0 {
		return Record{}, ErrorInvalidInput
	}
	if input.MinStock != nil && *input.MinStock < 0 {
		return Record{}, ErrorInvalidInput
	}

	for _, field := range []**string{&input.BuyPrice, &input.SellPrice} {
		if *field == nil {
			continue
		}
		price, ok := normalizePrice(**field)
		if !ok {
			return Record{}, ErrorInvalidInput
		}
		*field = &price
	}

	if input.Status != nil && !input.Status.Valid() {
		return Record{}, ErrorInvalidInput
	}

	record, err := service.repository.Update(ctx, sku, input)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			return Record{}, ErrorNotFound
		}
		return Record{}, err
	}

	return record, nil
}

// Categories devuelve las categorías administradas.
func (service *Service) Categories(ctx context.Context) ([]string, error) {
	return service.repository.ListCategories(ctx)
}

// AddCategory agrega una categoría administrada.
func (service *Service) AddCategory(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxCategoryLength {
		return "", ErrorInvalidInput
	}

	created, err := service.repository.InsertCategory(ctx, name)
	if err != nil {
		if errors.Is(err, ErrorDuplicateCategory) {
			return "", ErrorDuplicateCategory
		}
		return "", err
	}
	return created, nil
}

// normalizePrice valida un precio no negativo y lo devuelve en forma canónica.
func normalizePrice(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return "", false
	}
	return price.String(), true
}
