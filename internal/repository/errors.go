// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to mutate a resource owned by someone else, while
// ErrDuplicateItem signals that a watchlist insert hit the
// (user_id, item_id) unique key.
package repository

import "errors"

// ErrNotFound is returned when a row the caller addressed by id does
// not exist. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateItem is returned when a watchlist insert violates the
// (user_id, item_id) unique constraint. Handlers should translate this
// into an HTTP 409 response.
var ErrDuplicateItem = errors.New("item already in watchlist")
