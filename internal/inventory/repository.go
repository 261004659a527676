package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Querier es el subconjunto de pgxpool.Pool que usa el repositorio.
// Permite testear con fakes sin levantar Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository accede a las tablas inventory_items e inventory_categories.
type Repository struct {
	database Querier
}

// NewRepository crea un repositorio de inventario.
func NewRepository(database Querier) *Repository {
	return &Repository{database: database}
}

// Los precios viajan como text para parsearlos con decimal sin pasar por float.
const recordColumns = `sku, name, category, stock, min_stock, unit, buy_price::text, sell_price::text, status, created_at, updated_at`

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		record    Record
		buyPrice  string
		sellPrice string
		status    string
	)
	err := row.Scan(&record.SKU, &record.Name, &record.Category, &record.Stock, &record.MinStock, &record.Unit,
		&buyPrice, &sellPrice, &status, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return Record{}, err
	}

	if record.BuyPrice, err = decimal.NewFromString(buyPrice); err != nil {
		return Record{}, fmt.Errorf("parse buy_price of %s: %w", record.SKU, err)
	}
	if record.SellPrice, err = decimal.NewFromString(sellPrice); err != nil {
		return Record{}, fmt.Errorf("parse sell_price of %s: %w", record.SKU, err)
	}
	record.Status = Status(status)

	return record, nil
}

// ListAll devuelve el inventario completo en orden de alta.
// El filtrado se hace en memoria con Query.
func (repository *Repository) ListAll(ctx context.Context) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM inventory_items ORDER BY created_at, sku;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Insert crea un item. El SKU es clave primaria: duplicado => ErrorDuplicateSKU.
func (repository *Repository) Insert(ctx context.Context, input CreateRecordInput) (Record, error) {
	query := `
		INSERT INTO inventory_items (sku, name, category, stock, min_stock, unit, buy_price, sell_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9)
		RETURNING ` + recordColumns + `;`

	record, err := scanRecord(repository.database.QueryRow(ctx, query,
		input.SKU, input.Name, input.Category, input.Stock, input.MinStock, input.Unit,
		input.BuyPrice, input.SellPrice, string(input.Status)))
	if err != nil {
		if isUniqueViolation(err) {
			return Record{}, ErrorDuplicateSKU
		}
		return Record{}, err
	}

	return record, nil
}

// Update aplica un update parcial sobre el item con ese SKU.
func (repository *Repository) Update(ctx context.Context, sku string, input UpdateRecordInput) (Record, error) {
	if input.empty() {
		return Record{}, ErrorInvalidInput
	}

	setClauses := make([]string, 0, 9)
	args := make([]any, 0, 9)
	add := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Category != nil {
		add("category", *input.Category)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.MinStock != nil {
		add("min_stock", *input.MinStock)
	}
	if input.Unit != nil {
		add("unit", *input.Unit)
	}
	if input.BuyPrice != nil {
		add("buy_price", *input.BuyPrice)
		setClauses[len(setClauses)-1] += "::numeric"
	}
	if input.SellPrice != nil {
		add("sell_price", *input.SellPrice)
		setClauses[len(setClauses)-1] += "::numeric"
	}
	if input.Status != nil {
		add("status", string(*input.Status))
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, sku)
	query := fmt.Sprintf(`
		UPDATE inventory_items
		SET %s
		WHERE sku = $%d
		RETURNING %s;`, strings.Join(setClauses, ", "), len(args), recordColumns)

	record, err := scanRecord(repository.database.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrorNotFound
		}
		return Record{}, err
	}

	return record, nil
}

// ListCategories devuelve las categorías administradas, ordenadas por nombre.
func (repository *Repository) ListCategories(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM inventory_categories ORDER BY name;`

	rows, err := repository.database.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// InsertCategory agrega una categoría nueva.
func (repository *Repository) InsertCategory(ctx context.Context, name string) (string, error) {
	const query = `INSERT INTO inventory_categories (name) VALUES ($1) RETURNING name;`

	var created string
	if err := repository.database.QueryRow(ctx, query, name).Scan(&created); err != nil {
		if isUniqueViolation(err) {
			return "", ErrorDuplicateCategory
		}
		return "", err
	}

	return created, nil
}

// Postgres: unique_violation = 23505
func isUniqueViolation(err error) bool {
	var postgresError *pgconn.PgError
	return errors.As(err, &postgresError) && postgresError.Code == uniqueViolation
}
