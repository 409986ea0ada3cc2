package catalog

import "errors"

var (
	// ErrNotFound is returned when an entry does not exist or was deleted.
	ErrNotFound = errors.New("catalog entry not found")
	// ErrDuplicateSKU is returned when a create or update collides with an
	// existing SKU.
	ErrDuplicateSKU = errors.New("catalog entry with this SKU already exists")
	// ErrNegativeValue is returned when a price, stock count or minimum
	// level breaks the non-negativity rule.
	ErrNegativeValue = errors.New("negative value")
)
