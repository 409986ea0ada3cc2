// Package billing holds the pure invoice arithmetic. It never touches the
// database or the network; callers hand it in-memory line items and get
// totals back.
package billing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNegativeValue is returned when line input breaks the non-negativity
// rule.
var ErrNegativeValue = errors.New("negative value")

// MinorUnitPlaces is the number of decimal places of the smallest currency
// subunit (paise). Final displayed or persisted amounts are rounded to this
// precision; intermediate sums never are.
const MinorUnitPlaces = 2

// LineItem is one product/quantity/price/tax entry of an invoice draft.
// Quantity, UnitPrice and TaxRatePercent must be non-negative; Validate
// enforces that before anything is computed or persisted.
type LineItem struct {
	ProductID      uuid.UUID
	Name           string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
}

// Validate rejects negative quantity, unit price or tax rate. The
// calculator assumes validated input.
func (li LineItem) Validate() error {
	switch {
	case li.Quantity < 0:
		return fmt.Errorf("quantity %d: %w", li.Quantity, ErrNegativeValue)
	case li.UnitPrice.IsNegative():
		return fmt.Errorf("unit price %s: %w", li.UnitPrice, ErrNegativeValue)
	case li.TaxRatePercent.IsNegative():
		return fmt.Errorf("tax rate %s: %w", li.TaxRatePercent, ErrNegativeValue)
	}

	return nil
}

// ValidateLines validates every line, reporting the first offending line by
// its 1-based position.
func ValidateLines(items []LineItem) error {
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	return nil
}

// Subtotal returns quantity × unit price for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// Tax returns the tax amount for this line.
func (li LineItem) Tax() decimal.Decimal {
	return li.Subtotal().Mul(li.TaxRatePercent).Div(decimal.NewFromInt(100))
}

// Totals is the result of summing an invoice draft.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals sums the line items in a single pass. An empty slice yields
// zero totals, which is a valid state (a draft with no items yet), not an
// error. No rounding happens here so long item lists cannot accumulate
// per-line rounding drift.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero

	for _, li := range items {
		subtotal = subtotal.Add(li.Subtotal())
		tax = tax.Add(li.Tax())
	}

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// Round returns the totals rounded half-up to minor-unit precision. Call it
// once, on the values being displayed or persisted.
func (t Totals) Round() Totals {
	return Totals{
		Subtotal:  t.Subtotal.Round(MinorUnitPlaces),
		TaxAmount: t.TaxAmount.Round(MinorUnitPlaces),
		Total:     t.Total.Round(MinorUnitPlaces),
	}
}
