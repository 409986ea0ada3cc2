package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jfonseca/inventorypro/internal/billing"
)

func item(qty int64, price string, taxRate string) billing.LineItem {
	return billing.LineItem{
		Quantity:       qty,
		UnitPrice:      decimal.RequireFromString(price),
		TaxRatePercent: decimal.RequireFromString(taxRate),
	}
}

func TestComputeTotals(t *testing.T) {
	type testCase struct {
		name         string
		items        []billing.LineItem
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}

	tests := []testCase{
		{
			name:         "EmptyDraft",
			items:        nil,
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name: "MixedTaxRates",
			items: []billing.LineItem{
				item(2, "75000", "0"),
				item(1, "850", "18"),
			},
			wantSubtotal: "150850",
			wantTax:      "153",
			wantTotal:    "151003",
		},
		{
			name: "SingleTaxedLine",
			items: []billing.LineItem{
				item(3, "2500", "12"),
			},
			wantSubtotal: "7500",
			wantTax:      "900",
			wantTotal:    "8400",
		},
		{
			name: "ZeroQuantityLine",
			items: []billing.LineItem{
				item(0, "6500", "18"),
				item(1, "35", "0"),
			},
			wantSubtotal: "35",
			wantTax:      "0",
			wantTotal:    "35",
		},
		{
			name: "FractionalPrice",
			items: []billing.LineItem{
				item(4, "12.75", "5"),
			},
			wantSubtotal: "51",
			wantTax:      "2.55",
			wantTotal:    "53.55",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.ComputeTotals(tt.items)

			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s", got.Subtotal)
			assert.True(t, got.TaxAmount.Equal(decimal.RequireFromString(tt.wantTax)),
				"tax = %s", got.TaxAmount)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s", got.Total)
		})
	}
}

func TestComputeTotals_TotalIsSubtotalPlusTax(t *testing.T) {
	items := []billing.LineItem{
		item(2, "75000", "0"),
		item(1, "850", "18"),
		item(7, "33.33", "12.5"),
		item(150, "35", "28"),
	}

	got := billing.ComputeTotals(items)
	assert.True(t, got.Total.Equal(got.Subtotal.Add(got.TaxAmount)))
}

func TestComputeTotals_MonotonicInQuantity(t *testing.T) {
	items := []billing.LineItem{
		item(1, "850", "18"),
		item(5, "2500", "12"),
	}

	before := billing.ComputeTotals(items)

	items[0].Quantity++
	after := billing.ComputeTotals(items)

	assert.True(t, after.Subtotal.GreaterThanOrEqual(before.Subtotal))
	assert.True(t, after.TaxAmount.GreaterThanOrEqual(before.TaxAmount))
	assert.True(t, after.Total.GreaterThanOrEqual(before.Total))
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []billing.LineItem{
		item(2, "75000", "0"),
		item(1, "850", "18"),
	}

	first := billing.ComputeTotals(items)
	second := billing.ComputeTotals(items)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestLineItem_Validate(t *testing.T) {
	type testCase struct {
		name    string
		item    billing.LineItem
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", item: item(2, "75000", "18")},
		{name: "ZeroValues", item: item(0, "0", "0")},
		{name: "NegativeQuantity", item: item(-5, "75000", "18"), wantErr: true},
		{name: "NegativePrice", item: item(1, "-850", "18"), wantErr: true},
		{name: "NegativeTaxRate", item: item(1, "850", "-18"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrNegativeValue)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidateLines_ReportsLinePosition(t *testing.T) {
	items := []billing.LineItem{
		item(1, "850", "18"),
		item(-5, "75000", "18"),
	}

	err := billing.ValidateLines(items)
	assert.ErrorIs(t, err, billing.ErrNegativeValue)
	assert.Contains(t, err.Error(), "line 2")

	assert.NoError(t, billing.ValidateLines(nil))
}

func TestTotals_Round(t *testing.T) {
	// Three lines of 33.333... tax each only round once, at the end.
	items := []billing.LineItem{
		item(1, "1000", "3.3333"),
		item(1, "1000", "3.3333"),
		item(1, "1000", "3.3333"),
	}

	got := billing.ComputeTotals(items).Round()

	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("3000")))
	assert.True(t, got.TaxAmount.Equal(decimal.RequireFromString("100")), "tax = %s", got.TaxAmount)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("3100")), "total = %s", got.Total)
}
