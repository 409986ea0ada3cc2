package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the single company-wide configuration record: the typed
// replacement for the assorted per-screen defaults of the old dashboard.
// Screens read it explicitly through the service instead of polling ambient
// state.
type Settings struct {
	CompanyName string
	Email       string
	Phone       string
	Address     string
	City        string
	State       string
	PostalCode  string
	Country     string

	InvoicePrefix     string
	NextInvoiceNumber int64
	ProductPrefix     string
	NextProductNumber int64

	DefaultDueDays        int
	DefaultTaxRatePercent decimal.Decimal
	Currency              string
	InvoiceNotes          string

	UpdatedAt *time.Time
}
