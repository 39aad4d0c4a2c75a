package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, unknown genre).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned by repo functions when an insert violates a unique
// constraint, most often two writers claiming the same slug at once.
// Services retry slug generation on it; handlers map it to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned by service functions that need a user but were
// called without one. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when a signed-in user lacks the moderator role an
// operation needs. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
