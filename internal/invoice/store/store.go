package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jfonseca/inventorypro/internal/billing"
	"github.com/jfonseca/inventorypro/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.number, i.customer_id, c.name AS customer_name, i.issue_date, i.due_date,
	i.status, i.subtotal, i.tax_amount, i.total, i.created_at, i.updated_at, i.deleted_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	var customerName sql.NullString

	if err := s.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &customerName, &inv.IssueDate, &inv.DueDate,
		&statusStr, &inv.Subtotal, &inv.TaxAmount, &inv.Total,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)
	inv.CustomerName = customerName.String

	return &inv, nil
}

// CreateInvoice inserts the invoice and its items in one database
// transaction, so a draft is never stored with half its lines.
func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning invoice insert: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO invoices (number, customer_id, issue_date, due_date, status, subtotal, tax_amount, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		inv.Number,
		inv.CustomerID,
		inv.IssueDate,
		inv.DueDate,
		inv.Status,
		inv.Subtotal,
		inv.TaxAmount,
		inv.Total,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	if err := insertItems(ctx, dbTx, inv.ID, inv.Items); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing invoice insert: %w", err)
	}

	return nil
}

func insertItems(ctx context.Context, dbTx *sql.Tx, invoiceID uuid.UUID, items []invoice.Item) error {
	query := `
		INSERT INTO invoice_items (invoice_id, product_id, name, quantity, unit_price, tax_rate_percent, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	for i := range items {
		it := &items[i]

		err := dbTx.QueryRowContext(ctx, query,
			invoiceID,
			it.ProductID,
			it.Name,
			it.Quantity,
			it.UnitPrice,
			it.TaxRatePercent,
			it.Position,
		).Scan(&it.ID)
		if err != nil {
			return fmt.Errorf("creating invoice item: %w", err)
		}
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN customers c ON i.customer_id = c.id
		WHERE i.id = $1 AND i.deleted_at IS NULL`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Items = items

	return inv, nil
}

func (s *Store) listItems(ctx context.Context, invoiceID uuid.UUID) ([]invoice.Item, error) {
	query := `
		SELECT id, product_id, name, quantity, unit_price, tax_rate_percent, position
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing invoice items: %w", err)
	}
	defer rows.Close()

	var items []invoice.Item

	for rows.Next() {
		var it invoice.Item

		if err := rows.Scan(
			&it.ID, &it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice,
			&it.TaxRatePercent, &it.Position,
		); err != nil {
			return nil, fmt.Errorf("scanning invoice item: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice item rows: %w", err)
	}

	return items, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		LEFT JOIN customers c ON i.customer_id = c.id
		WHERE i.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND i.issue_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND i.issue_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY i.issue_date DESC, i.number DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

// ReplaceItems swaps all line items and the stored totals atomically.
func (s *Store) ReplaceItems(ctx context.Context, id uuid.UUID, items []invoice.Item, totals billing.Totals) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning item replace: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, "DELETE FROM invoice_items WHERE invoice_id = $1", id); err != nil {
		return fmt.Errorf("clearing invoice items: %w", err)
	}

	if err := insertItems(ctx, dbTx, id, items); err != nil {
		return err
	}

	query := `
		UPDATE invoices
		SET subtotal = $1, tax_amount = $2, total = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`

	if _, err := dbTx.ExecContext(ctx, query, totals.Subtotal, totals.TaxAmount, totals.Total, id); err != nil {
		return fmt.Errorf("updating invoice totals: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing item replace: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status invoice.Status) error {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE invoices
		SET deleted_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	return nil
}
