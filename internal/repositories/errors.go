package repositories

import "errors"

// ErrNotFound is returned when a requested document or record does not exist.
var ErrNotFound = errors.New("not found")
