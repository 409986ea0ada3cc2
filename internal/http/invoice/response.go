package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/invoice"
)

type invoiceResponse struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      time.Time       `json:"due_date"`
	Status       invoice.Status  `json:"status"`
	Items        []itemResponse  `json:"items,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

type itemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		IssueDate:    inv.IssueDate,
		DueDate:      inv.DueDate,
		Status:       inv.Status,
		Subtotal:     inv.Subtotal,
		TaxAmount:    inv.TaxAmount,
		Total:        inv.Total,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}

	if len(inv.Items) > 0 {
		resp.Items = make([]itemResponse, len(inv.Items))
		for i, item := range inv.Items {
			resp.Items[i] = itemResponse{
				ID:             item.ID,
				ProductID:      item.ProductID,
				Name:           item.Name,
				Quantity:       item.Quantity,
				UnitPrice:      item.UnitPrice,
				TaxRatePercent: item.TaxRatePercent,
				Subtotal:       item.Subtotal(),
				Tax:            item.Tax(),
			}
		}
	}

	return resp
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
