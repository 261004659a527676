package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Lelo88/backoffice-api-golang/internal/validation"
)

// Errores de dominio (no HTTP). El handler los traduce a status codes.
var (
	ErrorInvalidInput = errors.New("invalid input")
	ErrorNotFound     = errors.New("supplier not found")
	ErrorDuplicateID  = errors.New("duplicate supplier id")
)

// ValidationError lleva el detalle por campo. errors.Is(err, ErrorInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

func (validationError *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", validationError.Fields)
}

func (validationError *ValidationError) Unwrap() error {
	return ErrorInvalidInput
}

// RepositoryAPI define lo que el service necesita de persistencia.
type RepositoryAPI interface {
	List(ctx context.Context, search string) ([]Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	Insert(ctx context.Context, input CreateSupplierInput) (Supplier, error)
	Update(ctx context.Context, id string, input UpdateSupplierInput) (Supplier, error)
	Delete(ctx context.Context, id string) error
}

// Service contiene las reglas de negocio de proveedores.
type Service struct {
	repository RepositoryAPI
	validate   *validator.Validate
	logger     *zap.Logger
}

// NewService crea un service de proveedores.
func NewService(repository RepositoryAPI, logger *zap.Logger) *Service {
	return &Service{
		repository: repository,
		validate:   validation.New(),
		logger:     logger,
	}
}

// List devuelve proveedores, opcionalmente filtrados por nombre o ciudad.
func (service *Service) List(ctx context.Context, search string) ([]Supplier, error) {
	return service.repository.List(ctx, strings.TrimSpace(search))
}

// GetByID busca un proveedor.
func (service *Service) GetByID(ctx context.Context, id string) (Supplier, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Supplier{}, ErrorInvalidInput
	}

	supplier, err := service.repository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			return Supplier{}, ErrorNotFound
		}
		return Supplier{}, err
	}
	return supplier, nil
}

// Create valida y da de alta un proveedor.
func (service *Service) Create(ctx context.Context, input CreateSupplierInput) (Supplier, error) {
	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Email = strings.TrimSpace(input.Email)
	input.City = strings.TrimSpace(input.City)
	input.Address = strings.TrimSpace(input.Address)

	if fields := validation.Fields(service.validate.Struct(input)); fields != nil {
		return Supplier{}, &ValidationError{Fields: fields}
	}

	supplier, err := service.repository.Insert(ctx, input)
	if err != nil {
		if errors.Is(err, ErrorDuplicateID) {
			return Supplier{}, ErrorDuplicateID
		}
		return Supplier{}, err
	}

	service.logger.Info("supplier created", zap.String("supplier_id", supplier.ID))
	return supplier, nil
}

// Update valida y aplica un update parcial.
func (service *Service) Update(ctx context.Context, id string, input UpdateSupplierInput) (Supplier, error) {
	id = strings.TrimSpace(id)
	if id == "" || input.empty() {
		return Supplier{}, ErrorInvalidInput
	}

	for _, field := range []**string{&input.Name, &input.Contact, &input.Email, &input.City, &input.Address} {
		if *field == nil {
			continue
		}
		value := strings.TrimSpace(**field)
		*field = &value
	}

	if fields := validation.Fields(service.validate.Struct(input)); fields != nil {
		return Supplier{}, &ValidationError{Fields: fields}
	}

	supplier, err := service.repository.Update(ctx, id, input)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			return Supplier{}, ErrorNotFound
		}
		return Supplier{}, err
	}
	return supplier, nil
}

// Delete borra un proveedor.
func (service *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrorInvalidInput
	}

	if err := service.repository.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrorNotFound) {
			return ErrorNotFound
		}
		return err
	}

	service.logger.Info("supplier deleted", zap.String("supplier_id", id))
	return nil
}
