package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jfonseca/inventorypro/internal/billing"
)

// Status is the lifecycle state of an invoice. Transitions are externally
// driven (a payment was recorded, a due date elapsed); this package never
// computes them, only stores what it is told.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusOverdue:
		return true
	}

	return false
}

// Invoice is a persisted invoice. Subtotal, TaxAmount and Total are
// denormalized for listing but always recomputed through the billing package
// on every write, so they cannot disagree with the items.
type Invoice struct {
	ID           uuid.UUID
	Number       string
	CustomerID   uuid.UUID
	CustomerName string // loaded via JOIN
	IssueDate    time.Time
	DueDate      time.Time
	Status       Status
	Items        []Item // ordered by Position; loaded on Get, not on List
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// Item is one stored invoice line. The embedded billing fields snapshot the
// product name and price at draft time, so later catalog edits do not
// rewrite issued invoices.
type Item struct {
	ID       uuid.UUID
	Position int
	billing.LineItem
}

// SearchFields returns the fields matched by free-text invoice search.
func (inv *Invoice) SearchFields() []string {
	return []string{inv.Number, inv.CustomerName}
}
