package vector

import "fmt"

// DefaultName is the vector-space name used when the caller does not supply
// one, e.g. when constructing a SearchInput from a bare float slice.
const DefaultName = "default"

// Kind distinguishes single (flat) from multi (matrix) vectors.
type Kind int

const (
	// KindSingle - one flat embedding row
	KindSingle Kind = iota
	// KindMulti - a matrix of equal-length rows (per-token embeddings)
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindMulti:
		return "multi"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Float constrains the numeric element types accepted by the constructors.
// Payloads are stored as float32, matching the wire representation.
type Float interface {
	~float32 | ~float64
}

// Vector is one embedding value: either a single flat row or a multi-row
// matrix. The zero value is invalid; construct via Single or Multi.
//
// Vector is an immutable value type. Accessors return copies, so a Vector can
// be shared across goroutines freely.
type Vector struct {
	kind   Kind
	single []float32
	multi  [][]float32
}

// Single builds a single (flat) vector from the given values.
// Emptiness is checked when the vector enters a SearchInput, so Single can be
// chained directly into Named and builder calls.
func Single[T Float](values ...T) Vector {
	row := make([]float32, len(values))
	for i, v := range values {
		row[i] = float32(v)
	}
	return Vector{kind: KindSingle, single: row}
}

// SingleFrom builds a single vector from an existing slice.
func SingleFrom[T Float](values []T) Vector {
	return Single(values...)
}

// Multi builds a multi vector (matrix) from the given rows. All rows must
// share one length; that and non-emptiness are checked when the vector enters
// a SearchInput.
func Multi[T Float](rows ...[]T) Vector {
	m := make([][]float32, len(rows))
	for i, row := range rows {
		r := make([]float32, len(row))
		for j, v := range row {
			r[j] = float32(v)
		}
		m[i] = r
	}
	return Vector{kind: KindMulti, multi: m}
}

// MultiFrom builds a multi vector from an existing matrix.
func MultiFrom[T Float](rows [][]T) Vector {
	return Multi(rows...)
}

// Kind returns whether the vector is single or multi.
func (v Vector) Kind() Kind {
	return v.kind
}

// Values returns a copy of the flat payload. It is nil for multi vectors.
func (v Vector) Values() []float32 {
	if v.kind != KindSingle || v.single == nil {
		return nil
	}
	out := make([]float32, len(v.single))
	copy(out, v.single)
	return out
}

// Rows returns a copy of the matrix payload. It is nil for single vectors.
func (v Vector) Rows() [][]float32 {
	if v.kind != KindMulti || v.multi == nil {
		return nil
	}
	out := make([][]float32, len(v.multi))
	for i, row := range v.multi {
		r := make([]float32, len(row))
		copy(r, row)
		out[i] = r
	}
	return out
}

// Dimension returns the embedding dimension: row length for single vectors,
// column count for multi vectors. Zero for invalid vectors.
func (v Vector) Dimension() int {
	switch v.kind {
	case KindSingle:
		return len(v.single)
	case KindMulti:
		if len(v.multi) == 0 {
			return 0
		}
		return len(v.multi[0])
	default:
		return 0
	}
}

// IsZero reports whether the vector carries no payload at all.
func (v Vector) IsZero() bool {
	return v.single == nil && v.multi == nil
}

// Validate checks the structural invariants: a single vector is non-empty, a
// multi vector has at least one row and all rows share one length.
func (v Vector) Validate() error {
	switch v.kind {
	case KindSingle:
		if len(v.single) == 0 {
			return fmt.Errorf("%w: single vector must not be empty", ErrInvalidInput)
		}
	case KindMulti:
		if len(v.multi) == 0 {
			return fmt.Errorf("%w: multi vector must have at least one row", ErrInvalidInput)
		}
		dim := len(v.multi[0])
		if dim == 0 {
			return fmt.Errorf("%w: multi vector rows must not be empty", ErrInvalidInput)
		}
		for i, row := range v.multi {
			if len(row) != dim {
				return fmt.Errorf("%w: multi vector row %d has length %d, want %d",
					ErrInvalidInput, i, len(row), dim)
			}
		}
	default:
		return fmt.Errorf("%w: unknown vector kind %d", ErrInvalidInput, int(v.kind))
	}
	return nil
}

// Equal reports whether two vectors have the same kind and payload.
func (v Vector) Equal(other Vector) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindSingle:
		return equalRows(v.single, other.single)
	case KindMulti:
		if len(v.multi) != len(other.multi) {
			return false
		}
		for i := range v.multi {
			if !equalRows(v.multi[i], other.multi[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalRows(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NamedVector pairs a vector-space name with its payload. The zero value is
// invalid; construct via Named, NamedSingle or NamedMulti.
type NamedVector struct {
	// Name is the vector space this payload targets.
	Name string

	// Vector is the embedding payload.
	Vector Vector
}

// Named pairs a name with an existing vector.
func Named(name string, v Vector) NamedVector {
	return NamedVector{Name: name, Vector: v}
}

// NamedSingle pairs a name with a single vector built from values.
func NamedSingle[T Float](name string, values ...T) NamedVector {
	return NamedVector{Name: name, Vector: Single(values...)}
}

// NamedMulti pairs a name with a multi vector built from rows.
func NamedMulti[T Float](name string, rows ...[]T) NamedVector {
	return NamedVector{Name: name, Vector: Multi(rows...)}
}

func (nv NamedVector) validate() error {
	if nv.Name == "" {
		return fmt.Errorf("%w: vector target name must not be empty", ErrInvalidInput)
	}
	if err := nv.Vector.Validate(); err != nil {
		return fmt.Errorf("target %q: %w", nv.Name, err)
	}
	return nil
}
