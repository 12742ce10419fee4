package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"farmstead/pkg/apierror"
)

// RowScanner is the subset of pgx.Row/pgx.Rows needed to hydrate a record.
type RowScanner interface {
	Scan(dest ...any) error
}

// RowDef describes how one resource maps onto its table. All record tables
// share the same shape of access (list/get/insert/update/delete keyed by a
// UUID id), so the CRUD SQL is generated once from this definition instead of
// being rewritten per resource.
type RowDef[T any] struct {
	// Name is the singular human label used in error messages.
	Name string
	// Table is the Postgres table name.
	Table string
	// Columns are the non-id columns in insert/update order.
	Columns []string
	// OrderBy is the listing sort expression.
	OrderBy string
	// Scan hydrates a record from `id, columns...` selected in order.
	Scan func(row RowScanner) (T, error)
	// Values returns the record's values in Columns order.
	Values func(rec T) []any
}

// Records is a generic CRUD repository over a single table.
type Records[T any] struct {
	pool *pgxpool.Pool
	def  RowDef[T]

	selectSQL string
	insertSQL string
	updateSQL string
}

func NewRecords[T any](pool *pgxpool.Pool, def RowDef[T]) *Records[T] {
	cols := strings.Join(def.Columns, ", ")

	placeholders := make([]string, 0, len(def.Columns)+1)
	for i := 0; i < len(def.Columns)+1; i++ {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}

	assignments := make([]string, 0, len(def.Columns))
	for i, col := range def.Columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+2))
	}

	return &Records[T]{
		pool:      pool,
		def:       def,
		selectSQL: fmt.Sprintf("SELECT id, %s FROM %s", cols, def.Table),
		insertSQL: fmt.Sprintf("INSERT INTO %s (id, %s) VALUES (%s)",
			def.Table, cols, strings.Join(placeholders, ", ")),
		updateSQL: fmt.Sprintf("UPDATE %s SET %s WHERE id = $1",
			def.Table, strings.Join(assignments, ", ")),
	}
}

func (r *Records[T]) Name() string {
	return r.def.Name
}

func (r *Records[T]) List(ctx context.Context) ([]T, error) {
	query := r.selectSQL
	if r.def.OrderBy != "" {
		query += " ORDER BY " + r.def.OrderBy
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.def.Table, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		rec, err := r.def.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.def.Name, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Records[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	row := r.pool.QueryRow(ctx, r.selectSQL+" WHERE id = $1", id)
	rec, err := r.def.Scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, r.notFound(id)
	}
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", r.def.Name, err)
	}
	return rec, nil
}

func (r *Records[T]) Create(ctx context.Context, id string, rec T) error {
	args := append([]any{id}, r.def.Values(rec)...)
	if _, err := r.pool.Exec(ctx, r.insertSQL, args...); err != nil {
		return fmt.Errorf("create %s: %w", r.def.Name, err)
	}
	return nil
}

func (r *Records[T]) Update(ctx context.Context, id string, rec T) error {
	args := append([]any{id}, r.def.Values(rec)...)
	tag, err := r.pool.Exec(ctx, r.updateSQL, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.def.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *Records[T]) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.def.Table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.def.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *Records[T]) notFound(id string) error {
	return apierror.NotFound(r.def.Name+" not found", id)
}
