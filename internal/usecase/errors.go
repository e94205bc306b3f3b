package usecase

import "errors"

// Sentinel errors shared by every service in this package. Callers wrap them
// with fmt.Errorf("%w: ...") so the transport layer can map them to status
// codes with errors.Is.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
