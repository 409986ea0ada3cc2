package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectEntryColumns = `
	id, sku, name, category, kind, unit_price, stock_quantity, min_stock_level,
	created_at, updated_at, deleted_at
`

// scanEntry reads a catalog row. Expected column order matches
// selectEntryColumns.
func scanEntry(s scanner) (*catalog.Entry, error) {
	var e catalog.Entry

	var kindStr string

	var minStock sql.NullInt64

	if err := s.Scan(
		&e.ID, &e.SKU, &e.Name, &e.Category, &kindStr, &e.UnitPrice, &e.StockQuantity,
		&minStock, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	e.Kind = catalog.Kind(kindStr)

	if minStock.Valid {
		e.MinStockLevel = &minStock.Int64
	}

	return &e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) CreateEntry(ctx context.Context, e *catalog.Entry) error {
	query := `
		INSERT INTO products (sku, name, category, kind, unit_price, stock_quantity, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.SKU,
		e.Name,
		e.Category,
		e.Kind,
		e.UnitPrice,
		e.StockQuantity,
		e.MinStockLevel,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicateSKU
		}

		return fmt.Errorf("creating catalog entry: %w", err)
	}

	return nil
}

// CreateEntries inserts a batch atomically; an import either lands whole or
// not at all.
func (s *Store) CreateEntries(ctx context.Context, entries []*catalog.Entry) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch insert: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO products (sku, name, category, kind, unit_price, stock_quantity, min_stock_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	for _, e := range entries {
		err := dbTx.QueryRowContext(ctx, query,
			e.SKU,
			e.Name,
			e.Category,
			e.Kind,
			e.UnitPrice,
			e.StockQuantity,
			e.MinStockLevel,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return catalog.ErrDuplicateSKU
			}

			return fmt.Errorf("creating catalog entry %s: %w", e.SKU, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing batch insert: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*catalog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting catalog entry: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *catalog.Entry) error {
	query := `
		UPDATE products
		SET name = $1, category = $2, kind = $3, unit_price = $4, stock_quantity = $5, min_stock_level = $6, updated_at = NOW()
		WHERE id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.Category,
		e.Kind,
		e.UnitPrice,
		e.StockQuantity,
		e.MinStockLevel,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating catalog entry: %w", err)
	}

	return nil
}

// AdjustStock applies the delta and returns the fresh row. GREATEST keeps
// the stored count non-negative even if a correction overshoots.
func (s *Store) AdjustStock(ctx context.Context, id uuid.UUID, delta int64) (*catalog.Entry, error) {
	query := `
		UPDATE products
		SET stock_quantity = GREATEST(stock_quantity + $1, 0), updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + selectEntryColumns

	e, err := scanEntry(s.db.QueryRowContext(ctx, query, delta, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("adjusting stock: %w", err)
	}

	return e, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE products
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting catalog entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, kind *catalog.Kind) ([]*catalog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM products
		WHERE deleted_at IS NULL`

	var args []any

	if kind != nil {
		query += " AND kind = $1"

		args = append(args, *kind)
	}

	query += " ORDER BY sku ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []*catalog.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalog entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}

	return entries, nil
}
