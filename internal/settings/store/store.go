package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jfonseca/inventorypro/internal/settings"
)

// Store persists the single settings row. The table is constrained to one
// row (id = 1) by the schema.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetSettings(ctx context.Context) (*settings.Settings, error) {
	query := `
		SELECT company_name, email, phone, address, city, state, postal_code, country,
			invoice_prefix, next_invoice_number, product_prefix, next_product_number,
			default_due_days, default_tax_rate_percent, currency, invoice_notes, updated_at
		FROM settings
		WHERE id = 1
	`

	var cfg settings.Settings

	err := s.db.QueryRowContext(ctx, query).Scan(
		&cfg.CompanyName, &cfg.Email, &cfg.Phone, &cfg.Address, &cfg.City,
		&cfg.State, &cfg.PostalCode, &cfg.Country,
		&cfg.InvoicePrefix, &cfg.NextInvoiceNumber, &cfg.ProductPrefix, &cfg.NextProductNumber,
		&cfg.DefaultDueDays, &cfg.DefaultTaxRatePercent, &cfg.Currency, &cfg.InvoiceNotes,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &cfg, nil
}

func (s *Store) UpdateSettings(ctx context.Context, cfg *settings.Settings) error {
	query := `
		UPDATE settings
		SET company_name = $1, email = $2, phone = $3, address = $4, city = $5,
			state = $6, postal_code = $7, country = $8,
			invoice_prefix = $9, product_prefix = $10,
			default_due_days = $11, default_tax_rate_percent = $12, currency = $13,
			invoice_notes = $14, updated_at = NOW()
		WHERE id = 1
	`

	_, err := s.db.ExecContext(ctx, query,
		cfg.CompanyName, cfg.Email, cfg.Phone, cfg.Address, cfg.City,
		cfg.State, cfg.PostalCode, cfg.Country,
		cfg.InvoicePrefix, cfg.ProductPrefix,
		cfg.DefaultDueDays, cfg.DefaultTaxRatePercent, cfg.Currency,
		cfg.InvoiceNotes,
	)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	return nil
}

// NextInvoiceSeq hands out the current sequence value and advances it in a
// single statement, so concurrent drafts never collide.
func (s *Store) NextInvoiceSeq(ctx context.Context) (string, int64, error) {
	query := `
		UPDATE settings
		SET next_invoice_number = next_invoice_number + 1
		WHERE id = 1
		RETURNING invoice_prefix, next_invoice_number - 1
	`

	var prefix string

	var seq int64

	if err := s.db.QueryRowContext(ctx, query).Scan(&prefix, &seq); err != nil {
		return "", 0, fmt.Errorf("advancing invoice sequence: %w", err)
	}

	return prefix, seq, nil
}

func (s *Store) NextProductSeq(ctx context.Context) (string, int64, error) {
	query := `
		UPDATE settings
		SET next_product_number = next_product_number + 1
		WHERE id = 1
		RETURNING product_prefix, next_product_number - 1
	`

	var prefix string

	var seq int64

	if err := s.db.QueryRowContext(ctx, query).Scan(&prefix, &seq); err != nil {
		return "", 0, fmt.Errorf("advancing product sequence: %w", err)
	}

	return prefix, seq, nil
}
