// Package domain holds the storefront entities and the ports the
// application services depend on. Sentinel errors below are the whole
// failure taxonomy; higher layers translate them to HTTP statuses.
package domain

import "errors"

// ErrNotFound is returned when a hotel, room, booking, or review
// lookup (by id or confirmation number) matches nothing.
var ErrNotFound = errors.New("not found")

// ErrValidation covers malformed user input: missing guest fields,
// bad email shape, out-of-range ratings, non-positive night counts,
// unknown promo codes.
var ErrValidation = errors.New("validation failed")

// ErrStoreUnavailable is returned when the record store is not
// reachable or reports a failed call. Read paths degrade to empty
// results; write paths surface it to the caller.
var ErrStoreUnavailable = errors.New("record store unavailable")
