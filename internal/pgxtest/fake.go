// Package pgxtest tiene fakes de pgx para testear repositorios sin Postgres.
package pgxtest

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB registra la última query y delega en QueryRowFn/QueryFn.
type DB struct {
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	LastQuery      string
	LastArgs       []any
	QueryRowCalled bool
	QueryCalled    bool
}

func (db *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.QueryRowCalled = true
	db.LastQuery = sql
	db.LastArgs = args
	if db.QueryRowFn == nil {
		return &Row{Err: errors.New("unexpected QueryRow call")}
	}
	return db.QueryRowFn(ctx, sql, args...)
}

func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.QueryCalled = true
	db.LastQuery = sql
	db.LastArgs = args
	if db.QueryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.QueryFn(ctx, sql, args...)
}

// Row devuelve Values en Scan, o Err si está seteado.
type Row struct {
	Values []any
	Err    error
}

func (row *Row) Scan(dest ...any) error {
	if row.Err != nil {
		return row.Err
	}
	return assignValues(dest, row.Values)
}

// Rows itera Data. Columns alimenta FieldDescriptions (lo usa pgxscan).
type Rows struct {
	Columns []string
	Data    [][]any
	Error   error
	ScanErr error

	idx    int
	Closed bool
}

func (rows *Rows) Close() {
	rows.Closed = true
}

func (rows *Rows) Err() error {
	return rows.Error
}

func (rows *Rows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *Rows) FieldDescriptions() []pgconn.FieldDescription {
	descriptions := make([]pgconn.FieldDescription, len(rows.Columns))
	for i, name := range rows.Columns {
		descriptions[i] = pgconn.FieldDescription{Name: name}
	}
	return descriptions
}

func (rows *Rows) Next() bool {
	if rows.Closed {
		return false
	}
	if rows.idx >= len(rows.Data) {
		rows.Closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *Rows) Scan(dest ...any) error {
	if rows.ScanErr != nil {
		return rows.ScanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.Data) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.Data[rows.idx-1])
}

func (rows *Rows) Values() ([]any, error) {
	if rows.idx == 0 || rows.idx > len(rows.Data) {
		return nil, errors.New("values called without next")
	}
	return rows.Data[rows.idx-1], nil
}

func (rows *Rows) RawValues() [][]byte {
	return nil
}

func (rows *Rows) Conn() *pgx.Conn {
	return nil
}

// NormalizeSQL colapsa espacios para comparar SQL en asserts.
func NormalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest any, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("dest is not pointer")
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	valueValue := reflect.ValueOf(value)
	destElem := destValue.Elem()
	if destElem.Kind() == reflect.Ptr {
		ptrValue := reflect.New(destElem.Type().Elem())
		ptrValue.Elem().Set(valueValue.Convert(destElem.Type().Elem()))
		destElem.Set(ptrValue)
		return nil
	}
	if destElem.Kind() == reflect.Interface {
		destElem.Set(valueValue)
		return nil
	}
	destElem.Set(valueValue.Convert(destElem.Type()))
	return nil
}
