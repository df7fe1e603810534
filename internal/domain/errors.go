package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule.
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrEmptyBatch rejects an upload that contains no data rows.
// It is a whole-batch failure, not a per-row error.
var ErrEmptyBatch = errors.New("file is empty")

// ErrUnauthenticated is returned when a caller without a session attempts an
// operation that requires one. Handlers map this to HTTP 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when an authenticated caller lacks the admin role.
// Handlers map this to HTTP 403.
var ErrForbidden = errors.New("admin role required")
