package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jfonseca/inventorypro/internal/billing"
	"github.com/jfonseca/inventorypro/internal/search"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	ReplaceItems(ctx context.Context, id uuid.UUID, items []Item, totals billing.Totals) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
}

// NumberSource issues invoice numbers ("INV-042") from the settings
// sequence.
type NumberSource interface {
	NextInvoiceNumber(ctx context.Context) (string, error)
}

type Service struct {
	repo    Repository
	numbers NumberSource
}

func NewService(repo Repository, numbers NumberSource) *Service {
	return &Service{repo: repo, numbers: numbers}
}

type CreateParams struct {
	CustomerID uuid.UUID
	IssueDate  time.Time
	DueDate    time.Time
	Items      []billing.LineItem
}

// ListFilter narrows List results. Status and dates are applied by the
// store; Query is matched in memory against number and customer name.
type ListFilter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
	Query     string
}

// CreateDraft stores a new draft invoice. Totals come from the calculator
// and are rounded to minor-unit precision once, here, on the values being
// persisted. A draft with no items is allowed; a draft with a negative
// quantity, price or tax rate is not.
func (s *Service) CreateDraft(ctx context.Context, params CreateParams) (*Invoice, error) {
	if err := billing.ValidateLines(params.Items); err != nil {
		return nil, err
	}

	number, err := s.numbers.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("issuing invoice number: %w", err)
	}

	totals := billing.ComputeTotals(params.Items).Round()

	inv := &Invoice{
		Number:     number,
		CustomerID: params.CustomerID,
		IssueDate:  params.IssueDate,
		DueDate:    params.DueDate,
		Status:     StatusDraft,
		Items:      toItems(params.Items),
		Subtotal:   totals.Subtotal,
		TaxAmount:  totals.TaxAmount,
		Total:      totals.Total,
	}

	if err := s.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

// List returns invoices matching the filter, without their items.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	invoices, err := s.repo.ListInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	return search.Filter(invoices, filter.Query, (*Invoice).SearchFields), nil
}

// ReplaceItems swaps the line items of a draft and recomputes its totals.
func (s *Service) ReplaceItems(ctx context.Context, id uuid.UUID, lines []billing.LineItem) (*Invoice, error) {
	if err := billing.ValidateLines(lines); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusDraft {
		return nil, ErrNotDraft
	}

	totals := billing.ComputeTotals(lines).Round()

	items := toItems(lines)
	if err := s.repo.ReplaceItems(ctx, id, items, totals); err != nil {
		return nil, err
	}

	inv.Items = items
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.Total = totals.Total

	return inv, nil
}

// Finalize turns a draft into a pending invoice. Submitting an empty draft
// is the one state the UI must block; everything downstream assumes an
// issued invoice has at least one line.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusDraft {
		return nil, ErrNotDraft
	}

	if len(inv.Items) == 0 {
		return nil, ErrEmptyDraft
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusPending); err != nil {
		return nil, err
	}

	inv.Status = StatusPending

	return inv, nil
}

// UpdateStatus records an externally driven transition (payment recorded,
// due date elapsed).
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteInvoice(ctx, id)
}

func toItems(lines []billing.LineItem) []Item {
	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{Position: i, LineItem: line}
	}

	return items
}
