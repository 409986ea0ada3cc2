package customer

import "errors"

// ErrNotFound is returned when a customer does not exist or was deleted.
var ErrNotFound = errors.New("customer not found")
