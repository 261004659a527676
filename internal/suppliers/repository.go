package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	suppliersTable  = "suppliers"
	uniqueViolation = "23505"
)

// Postgres usa \ como escape por defecto en LIKE/ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

var supplierColumns = []string{"id", "name", "contact", "email", "city", "address", "created_at", "updated_at"}

// Repository accede a la tabla suppliers.
// Las queries se arman con squirrel y se escanean con pgxscan.
type Repository struct {
	database pgxscan.Querier
	builder  squirrel.StatementBuilderType
}

// NewRepository crea un repositorio de proveedores.
func NewRepository(database pgxscan.Querier) *Repository {
	return &Repository{
		database: database,
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func returning() string {
	return "RETURNING " + strings.Join(supplierColumns, ", ")
}

// List devuelve los proveedores ordenados por nombre.
// Si search no está vacío filtra por nombre o ciudad (case-insensitive).
func (repository *Repository) List(ctx context.Context, search string) ([]Supplier, error) {
	query := repository.builder.
		Select(supplierColumns...).
		From(suppliersTable).
		OrderBy("name", "id")

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"city": pattern},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	suppliers := make([]Supplier, 0)
	if err := pgxscan.Select(ctx, repository.database, &suppliers, sql, args...); err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetByID busca un proveedor por ID.
func (repository *Repository) GetByID(ctx context.Context, id string) (Supplier, error) {
	sql, args, err := repository.builder.
		Select(supplierColumns...).
		From(suppliersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return Supplier{}, fmt.Errorf("build get query: %w", err)
	}

	return repository.getOne(ctx, sql, args)
}

// Insert crea un proveedor. ID duplicado => ErrorDuplicateID.
func (repository *Repository) Insert(ctx context.Context, input CreateSupplierInput) (Supplier, error) {
	sql, args, err := repository.builder.
		Insert(suppliersTable).
		Columns("id", "name", "contact", "email", "city", "address").
		Values(input.ID, input.Name, input.Contact, input.Email, input.City, input.Address).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return Supplier{}, fmt.Errorf("build insert query: %w", err)
	}

	return repository.getOne(ctx, sql, args)
}

// Update aplica un update parcial sobre el proveedor id.
func (repository *Repository) Update(ctx context.Context, id string, input UpdateSupplierInput) (Supplier, error) {
	if input.empty() {
		return Supplier{}, ErrorInvalidInput
	}

	query := repository.builder.Update(suppliersTable)
	if input.Name != nil {
		query = query.Set("name", *input.Name)
	}
	if input.Contact != nil {
		query = query.Set("contact", *input.Contact)
	}
	if input.Email != nil {
		query = query.Set("email", *input.Email)
	}
	if input.City != nil {
		query = query.Set("city", *input.City)
	}
	if input.Address != nil {
		query = query.Set("address", *input.Address)
	}

	sql, args, err := query.
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return Supplier{}, fmt.Errorf("build update query: %w", err)
	}

	return repository.getOne(ctx, sql, args)
}

// Delete borra el proveedor id.
func (repository *Repository) Delete(ctx context.Context, id string) error {
	sql, args, err := repository.builder.
		Delete(suppliersTable).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	var deleted string
	if err := pgxscan.Get(ctx, repository.database, &deleted, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return ErrorNotFound
		}
		return err
	}
	return nil
}

func (repository *Repository) getOne(ctx context.Context, sql string, args []any) (Supplier, error) {
	var supplier Supplier
	if err := pgxscan.Get(ctx, repository.database, &supplier, sql, args...); err != nil {
		switch {
		case pgxscan.NotFound(err):
			return Supplier{}, ErrorNotFound
		case isUniqueViolation(err):
			return Supplier{}, ErrorDuplicateID
		default:
			return Supplier{}, err
		}
	}
	return supplier, nil
}

// Postgres: unique_violation = 23505
func isUniqueViolation(err error) bool {
	var postgresError *pgconn.PgError
	return errors.As(err, &postgresError) && postgresError.Code == uniqueViolation
}
