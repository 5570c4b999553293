// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the right HTTP status codes without inspecting error
// strings. Store-level failures that do not match a sentinel are
// wrapped with operation context before they leave this package.
package repository

import "errors"

// ErrMovieNotFound is returned when a film row cannot be located.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrUserNotFound is returned when a user row cannot be located.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUsername is returned when a registration hits the unique
// constraint on user.username. Handlers should translate this into an
// HTTP 409 response.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrNoUpdateFields is returned when an update carries no fields at
// all. The update is rejected before any statement is issued; a no-op
// UPDATE is never sent to the store.
var ErrNoUpdateFields = errors.New("no update fields provided")

// ErrTitleRequired is returned when a create is attempted without a
// title, the only mandatory film column.
var ErrTitleRequired = errors.New("title is required")
