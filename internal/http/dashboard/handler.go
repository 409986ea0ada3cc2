// Package dashboard serves the aggregate numbers the admin landing screen
// shows: record counts, revenue, recent invoices and the low stock alert.
package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/catalog"
	"github.com/jfonseca/inventorypro/internal/customer"
	"github.com/jfonseca/inventorypro/internal/invoice"
)

const recentInvoiceCount = 5

type Handler struct {
	catalog   *catalog.Service
	customers *customer.Service
	invoices  *invoice.Service
}

func NewHandler(cat *catalog.Service, customers *customer.Service, invoices *invoice.Service) *Handler {
	return &Handler{catalog: cat, customers: customers, invoices: invoices}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type invoiceSummary struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name,omitempty"`
	Status       invoice.Status  `json:"status"`
	Total        decimal.Decimal `json:"total"`
}

type lowStockSummary struct {
	ID            uuid.UUID           `json:"id"`
	SKU           string              `json:"sku"`
	Name          string              `json:"name"`
	StockQuantity int64               `json:"stock_quantity"`
	MinStock      int64               `json:"min_stock"`
	StockStatus   catalog.StockStatus `json:"stock_status"`
}

type summaryResponse struct {
	ProductCount  int               `json:"product_count"`
	CustomerCount int               `json:"customer_count"`
	InvoiceCount  int               `json:"invoice_count"`
	PendingCount  int               `json:"pending_count"`
	OverdueCount  int               `json:"overdue_count"`
	PaidRevenue   decimal.Decimal   `json:"paid_revenue"`
	Outstanding   decimal.Decimal   `json:"outstanding"`
	Recent        []invoiceSummary  `json:"recent_invoices"`
	LowStock      []lowStockSummary `json:"low_stock"`
	LowStockCount int               `json:"low_stock_count"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.catalog.List(ctx, catalog.ListFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	customers, err := h.customers.List(ctx, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	invoices, err := h.invoices.List(ctx, invoice.ListFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := summaryResponse{
		ProductCount:  len(entries),
		CustomerCount: len(customers),
		InvoiceCount:  len(invoices),
		PaidRevenue:   decimal.Zero,
		Outstanding:   decimal.Zero,
		Recent:        make([]invoiceSummary, 0, recentInvoiceCount),
		LowStock:      make([]lowStockSummary, 0),
	}

	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusPaid:
			resp.PaidRevenue = resp.PaidRevenue.Add(inv.Total)
		case invoice.StatusPending:
			resp.PendingCount++
			resp.Outstanding = resp.Outstanding.Add(inv.Total)
		case invoice.StatusOverdue:
			resp.OverdueCount++
			resp.Outstanding = resp.Outstanding.Add(inv.Total)
		}

		if len(resp.Recent) < recentInvoiceCount {
			resp.Recent = append(resp.Recent, invoiceSummary{
				ID:           inv.ID,
				Number:       inv.Number,
				CustomerName: inv.CustomerName,
				Status:       inv.Status,
				Total:        inv.Total,
			})
		}
	}

	below, err := h.catalog.BelowMinimum(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	policy := h.catalog.Policy()

	for _, e := range below {
		resp.LowStock = append(resp.LowStock, lowStockSummary{
			ID:            e.ID,
			SKU:           e.SKU,
			Name:          e.Name,
			StockQuantity: e.StockQuantity,
			MinStock:      policy.EffectiveMinStock(e),
			StockStatus:   policy.StatusOf(e),
		})
	}

	resp.LowStockCount = len(resp.LowStock)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
