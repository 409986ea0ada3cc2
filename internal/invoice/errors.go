package invoice

import "errors"

var (
	// ErrNotFound is returned when an invoice does not exist or was deleted.
	ErrNotFound = errors.New("invoice not found")
	// ErrEmptyDraft is returned when a draft with no line items is
	// finalized. An empty draft itself is a valid state; only submission is
	// blocked.
	ErrEmptyDraft = errors.New("invoice draft has no line items")
	// ErrNotDraft is returned when line items of an already issued invoice
	// are edited.
	ErrNotDraft = errors.New("invoice is no longer a draft")
)
