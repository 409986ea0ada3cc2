package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type settingsResponse struct {
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`

	InvoicePrefix     string `json:"invoice_prefix"`
	NextInvoiceNumber int64  `json:"next_invoice_number"`
	ProductPrefix     string `json:"product_prefix"`
	NextProductNumber int64  `json:"next_product_number"`

	DefaultDueDays        int             `json:"default_due_days"`
	DefaultTaxRatePercent decimal.Decimal `json:"default_tax_rate_percent"`
	Currency              string          `json:"currency"`
	InvoiceNotes          string          `json:"invoice_notes"`

	UpdatedAt *time.Time `json:"updated_at"`
}

func toResponse(cfg *settings.Settings) settingsResponse {
	return settingsResponse{
		CompanyName:           cfg.CompanyName,
		Email:                 cfg.Email,
		Phone:                 cfg.Phone,
		Address:               cfg.Address,
		City:                  cfg.City,
		State:                 cfg.State,
		PostalCode:            cfg.PostalCode,
		Country:               cfg.Country,
		InvoicePrefix:         cfg.InvoicePrefix,
		NextInvoiceNumber:     cfg.NextInvoiceNumber,
		ProductPrefix:         cfg.ProductPrefix,
		NextProductNumber:     cfg.NextProductNumber,
		DefaultDueDays:        cfg.DefaultDueDays,
		DefaultTaxRatePercent: cfg.DefaultTaxRatePercent,
		Currency:              cfg.Currency,
		InvoiceNotes:          cfg.InvoiceNotes,
		UpdatedAt:             cfg.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cfg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// updateSettingsRequest deliberately omits the sequence counters: those only
// move through issuing numbers, never through this endpoint.
type updateSettingsRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
	Country     *string `json:"country,omitempty"`

	InvoicePrefix *string `json:"invoice_prefix,omitempty"`
	ProductPrefix *string `json:"product_prefix,omitempty"`

	DefaultDueDays        *int             `json:"default_due_days,omitempty"`
	DefaultTaxRatePercent *decimal.Decimal `json:"default_tax_rate_percent,omitempty"`
	Currency              *string          `json:"currency,omitempty"`
	InvoiceNotes          *string          `json:"invoice_notes,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if req.CompanyName != nil {
		cfg.CompanyName = *req.CompanyName
	}

	if req.Email != nil {
		cfg.Email = *req.Email
	}

	if req.Phone != nil {
		cfg.Phone = *req.Phone
	}

	if req.Address != nil {
		cfg.Address = *req.Address
	}

	if req.City != nil {
		cfg.City = *req.City
	}

	if req.State != nil {
		cfg.State = *req.State
	}

	if req.PostalCode != nil {
		cfg.PostalCode = *req.PostalCode
	}

	if req.Country != nil {
		cfg.Country = *req.Country
	}

	if req.InvoicePrefix != nil {
		cfg.InvoicePrefix = *req.InvoicePrefix
	}

	if req.ProductPrefix != nil {
		cfg.ProductPrefix = *req.ProductPrefix
	}

	if req.DefaultDueDays != nil {
		cfg.DefaultDueDays = *req.DefaultDueDays
	}

	if req.DefaultTaxRatePercent != nil {
		cfg.DefaultTaxRatePercent = *req.DefaultTaxRatePercent
	}

	if req.Currency != nil {
		cfg.Currency = *req.Currency
	}

	if req.InvoiceNotes != nil {
		cfg.InvoiceNotes = *req.InvoiceNotes
	}

	if err := h.svc.Update(r.Context(), cfg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cfg)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
