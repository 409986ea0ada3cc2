package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/search"
)

// Kind distinguishes sellable products from raw materials.
type Kind string

const (
	KindFinishedProduct Kind = "finished_product"
	KindRawMaterial     Kind = "raw_material"
)

// Entry is a catalog record: a product or raw material with stock and
// pricing. Stock status is never stored on the entry; it is derived from
// StockQuantity and the minimum level on every read so it cannot drift.
type Entry struct {
	ID            uuid.UUID
	SKU           string
	Name          string
	Category      string
	Kind          Kind
	UnitPrice     decimal.Decimal
	StockQuantity int64
	// MinStockLevel overrides the per-kind policy fallback when set.
	MinStockLevel *int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
}

// SearchFields returns the fields matched by free-text catalog search.
func (e *Entry) SearchFields() []string {
	return []string{e.SKU, e.Name, e.Category}
}

// StockFacet narrows a filtered list to entries with the given derived
// status under the policy. The predicate goes through the resolver so the
// low-stock rule is defined exactly once.
func StockFacet(policy StockPolicy, status StockStatus) search.Predicate[*Entry] {
	return func(e *Entry) bool { return policy.StatusOf(e) == status }
}
