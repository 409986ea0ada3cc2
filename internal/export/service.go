// Package export writes invoice registers as CSV for use in external
// accounting tools.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jfonseca/inventorypro/internal/invoice"
)

// Lister is the slice of the invoice service the exporter needs.
type Lister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Service struct {
	invoices Lister
}

func NewService(invoices Lister) *Service {
	return &Service{invoices: invoices}
}

var header = []string{
	"number", "customer", "issue_date", "due_date", "status",
	"subtotal", "tax_amount", "total",
}

// Export writes invoices matching the filter as CSV rows. Amounts are
// written with two decimal places. Returns the number of invoices written.
func (s *Service) Export(ctx context.Context, filter invoice.ListFilter, w io.Writer) (int, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing invoices: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, inv := range invoices {
		row := []string{
			inv.Number,
			inv.CustomerName,
			inv.IssueDate.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			string(inv.Status),
			inv.Subtotal.StringFixed(2),
			inv.TaxAmount.StringFixed(2),
			inv.Total.StringFixed(2),
		}

		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("writing invoice %s: %w", inv.Number, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(invoices), nil
}

// Filename suggests a download name for an export generated now.
func Filename(now time.Time) string {
	return fmt.Sprintf("invoices_%s.csv", now.Format("20060102"))
}
