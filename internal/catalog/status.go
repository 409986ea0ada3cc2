package catalog

// StockStatus is the categorical stock state shown as a badge and used by
// the low-stock facet and dashboard alert.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusInStock    StockStatus = "in_stock"
)

// ResolveStockStatus derives the status from a stock count and a minimum
// level. Zero stock wins over the threshold comparison; the threshold itself
// is inclusive.
func ResolveStockStatus(stockQuantity, minStockLevel int64) StockStatus {
	switch {
	case stockQuantity == 0:
		return StatusOutOfStock
	case stockQuantity <= minStockLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// StockPolicy carries the fallback minimum stock levels applied when an
// entry has no explicit MinStockLevel. The values come from configuration,
// not constants, so deployments can tune them per catalog segment.
type StockPolicy struct {
	FinishedMinStock    int64
	RawMaterialMinStock int64
}

// DefaultStockPolicy matches the configuration defaults.
func DefaultStockPolicy() StockPolicy {
	return StockPolicy{FinishedMinStock: 10, RawMaterialMinStock: 5}
}

// MinFor returns the fallback minimum for a kind.
func (p StockPolicy) MinFor(kind Kind) int64 {
	if kind == KindRawMaterial {
		return p.RawMaterialMinStock
	}

	return p.FinishedMinStock
}

// EffectiveMinStock returns the entry's own minimum level, or the policy
// fallback for its kind when unset.
func (p StockPolicy) EffectiveMinStock(e *Entry) int64 {
	if e.MinStockLevel != nil {
		return *e.MinStockLevel
	}

	return p.MinFor(e.Kind)
}

// StatusOf derives the stock status of an entry under this policy.
func (p StockPolicy) StatusOf(e *Entry) StockStatus {
	return ResolveStockStatus(e.StockQuantity, p.EffectiveMinStock(e))
}
