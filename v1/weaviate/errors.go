package weaviate

import "errors"

// Common client errors
var (
	// ErrNotReady is returned when the server fails the readiness probe.
	ErrNotReady = errors.New("weaviate: server not ready")

	// ErrNotFound is returned when a collection or object does not exist.
	ErrNotFound = errors.New("weaviate: not found")

	// ErrServerValidation wraps schema-dependent rejections reported by the
	// server: unknown vector names, dimension mismatches, unsupported
	// combinations. These are never pre-validated client-side.
	ErrServerValidation = errors.New("weaviate: server rejected request")

	// ErrRequest wraps transport-level failures.
	ErrRequest = errors.New("weaviate: request failed")
)

// IsNotFound checks if the error is a "does not exist" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsServerValidation checks if the error is a server-side rejection.
func IsServerValidation(err error) bool {
	return errors.Is(err, ErrServerValidation)
}
