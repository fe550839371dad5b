package apperr

import "errors"

// ErrUnauthorized is returned when no valid identity accompanies the request
// (missing, malformed, tampered or expired token).
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when a valid identity lacks permission for the
// requested action, including a company outside the courier's scope.
var ErrForbidden = errors.New("forbidden")

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the referenced resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness conflict (HTTP 409).
var ErrConflict = errors.New("conflict")
