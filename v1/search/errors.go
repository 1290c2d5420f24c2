package search

import (
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// ErrInvalidInput aliases the vector package's sentinel so one errors.Is
// check covers construction failures from both packages.
var ErrInvalidInput = vector.ErrInvalidInput

// IsInvalidInput reports whether err is a construction-time input error.
func IsInvalidInput(err error) bool {
	return vector.IsInvalidInput(err)
}
