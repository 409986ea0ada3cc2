package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

func TestResolveStockStatus(t *testing.T) {
	type testCase struct {
		name  string
		stock int64
		min   int64
		want  catalog.StockStatus
	}

	tests := []testCase{
		{name: "ZeroStock", stock: 0, min: 10, want: catalog.StatusOutOfStock},
		{name: "ZeroStockZeroMin", stock: 0, min: 0, want: catalog.StatusOutOfStock},
		{name: "BelowMin", stock: 5, min: 10, want: catalog.StatusLowStock},
		{name: "AtMinBoundary", stock: 10, min: 10, want: catalog.StatusLowStock},
		{name: "AboveMin", stock: 15, min: 10, want: catalog.StatusInStock},
		{name: "OneAboveMin", stock: 11, min: 10, want: catalog.StatusInStock},
		{name: "ZeroMinNonzeroStock", stock: 1, min: 0, want: catalog.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.ResolveStockStatus(tt.stock, tt.min))
		})
	}
}

func TestStockPolicy_EffectiveMinStock(t *testing.T) {
	policy := catalog.StockPolicy{FinishedMinStock: 10, RawMaterialMinStock: 5}

	finished := &catalog.Entry{Kind: catalog.KindFinishedProduct}
	raw := &catalog.Entry{Kind: catalog.KindRawMaterial}

	assert.Equal(t, int64(10), policy.EffectiveMinStock(finished))
	assert.Equal(t, int64(5), policy.EffectiveMinStock(raw))

	override := int64(25)
	finished.MinStockLevel = &override
	assert.Equal(t, int64(25), policy.EffectiveMinStock(finished))
}

func TestStockPolicy_StatusOf(t *testing.T) {
	policy := catalog.StockPolicy{FinishedMinStock: 10, RawMaterialMinStock: 5}

	// Same count, different kind fallbacks.
	assert.Equal(t, catalog.StatusLowStock, policy.StatusOf(&catalog.Entry{
		Kind: catalog.KindFinishedProduct, StockQuantity: 7,
	}))
	assert.Equal(t, catalog.StatusInStock, policy.StatusOf(&catalog.Entry{
		Kind: catalog.KindRawMaterial, StockQuantity: 7,
	}))
	assert.Equal(t, catalog.StatusOutOfStock, policy.StatusOf(&catalog.Entry{
		Kind: catalog.KindRawMaterial, StockQuantity: 0,
	}))
}
