package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist, so the
// HTTP layer can distinguish 404s from store failures.
var ErrNotFound = errors.New("record not found")
