package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a billing contact that invoices are issued to.
type Customer struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// SearchFields returns the fields matched by free-text customer search.
func (c *Customer) SearchFields() []string {
	return []string{c.Name, c.Email}
}
