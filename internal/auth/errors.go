package auth

import "errors"

// ErrUserNotFound is returned by the store when no user has the given
// email.
var ErrUserNotFound = errors.New("user not found")
