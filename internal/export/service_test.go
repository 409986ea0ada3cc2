package export

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfonseca/inventorypro/internal/invoice"
)

type stubLister struct {
	invoices []*invoice.Invoice
	err      error
}

func (s *stubLister) List(_ context.Context, _ invoice.ListFilter) ([]*invoice.Invoice, error) {
	return s.invoices, s.err
}

func TestService_Export(t *testing.T) {
	t.Parallel()

	issue := time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)

	lister := &stubLister{
		invoices: []*invoice.Invoice{
			{
				Number:       "INV-007",
				CustomerName: "Sharma Industries",
				IssueDate:    issue,
				DueDate:      issue.AddDate(0, 0, 30),
				Status:       invoice.StatusPending,
				Subtotal:     decimal.RequireFromString("150850"),
				TaxAmount:    decimal.RequireFromString("153"),
				Total:        decimal.RequireFromString("151003"),
			},
		},
	}

	var buf bytes.Buffer

	n, err := NewService(lister).Export(context.Background(), invoice.ListFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := "number,customer,issue_date,due_date,status,subtotal,tax_amount,total\n" +
		"INV-007,Sharma Industries,2026-08-12,2026-09-11,pending,150850.00,153.00,151003.00\n"
	assert.Equal(t, want, buf.String())
}

func TestService_Export_ListError(t *testing.T) {
	t.Parallel()

	lister := &stubLister{err: errors.New("db down")}

	var buf bytes.Buffer

	_, err := NewService(lister).Export(context.Background(), invoice.ListFilter{}, &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestFilename(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "invoices_20260831.csv", Filename(now))
}
