package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

type entryResponse struct {
	ID            uuid.UUID           `json:"id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name"`
	Category      string              `json:"category,omitempty"`
	Kind          catalog.Kind        `json:"kind"`
	UnitPrice     decimal.Decimal     `json:"unit_price"`
	StockQuantity int64               `json:"stock_quantity"`
	MinStockLevel *int64              `json:"min_stock_level,omitempty"`
	StockStatus   catalog.StockStatus `json:"stock_status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
}

// toResponse derives the stock status under the policy at response time, so
// the badge always reflects the current quantity.
func toResponse(e *catalog.Entry, policy catalog.StockPolicy) entryResponse {
	return entryResponse{
		ID:            e.ID,
		SKU:           e.SKU,
		Name:          e.Name,
		Category:      e.Category,
		Kind:          e.Kind,
		UnitPrice:     e.UnitPrice,
		StockQuantity: e.StockQuantity,
		MinStockLevel: e.MinStockLevel,
		StockStatus:   policy.StatusOf(e),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toResponseList(entries []*catalog.Entry, policy catalog.StockPolicy) []entryResponse {
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = toResponse(e, policy)
	}

	return resp
}
