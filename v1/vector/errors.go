package vector

import "errors"

// ErrInvalidInput is the sentinel wrapped by every construction error in this
// package. It marks structural violations detectable without contacting a
// server: empty target lists, missing weights, duplicate names.
var ErrInvalidInput = errors.New("vector: invalid input")

// IsInvalidInput reports whether err originates from invalid input
// construction in this package (or packages wrapping its sentinel).
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
