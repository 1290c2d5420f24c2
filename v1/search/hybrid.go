package search

import (
	"fmt"

	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// HybridVariant tags which member of the hybrid union is populated.
type HybridVariant int

const (
	// HybridVariantInvalid - the zero Hybrid; not constructible through the
	// factories.
	HybridVariantInvalid HybridVariant = iota
	// HybridVariantVectorSearch - a plain vector payload.
	HybridVariantVectorSearch
	// HybridVariantNearText - a server-vectorized text query.
	HybridVariantNearText
	// HybridVariantNearVector - a thresholded vector payload.
	HybridVariantNearVector
)

func (v HybridVariant) String() string {
	switch v {
	case HybridVariantVectorSearch:
		return "vectorSearch"
	case HybridVariantNearText:
		return "nearText"
	case HybridVariantNearVector:
		return "nearVector"
	default:
		return "invalid"
	}
}

// hybridVariant is the closed union: only the three wrapper types in this
// file implement it, so a Hybrid can never hold more than one member and no
// outside package can add a fourth.
type hybridVariant interface {
	hybridVariantTag() HybridVariant
}

type hybridVectorSearch struct{ in vector.SearchInput }
type hybridNearText struct{ nt NearText }
type hybridNearVector struct{ nv NearVector }

func (hybridVectorSearch) hybridVariantTag() HybridVariant { return HybridVariantVectorSearch }
func (hybridNearText) hybridVariantTag() HybridVariant     { return HybridVariantNearText }
func (hybridNearVector) hybridVariantTag() HybridVariant   { return HybridVariantNearVector }

// Hybrid is the single "vectors" argument of a hybrid (keyword + vector)
// search: exactly one of a plain vector payload, a near-text query, or a
// thresholded near-vector query. The zero value is invalid; construct via the
// Hybrid* factories, HybridFrom, or a HybridBuilder.
//
// Combining near-text and near-vector in one Hybrid is not a runtime error;
// it is unrepresentable.
type Hybrid struct {
	v hybridVariant
}

// HybridVectorSearch wraps a plain vector payload.
func HybridVectorSearch(in vector.SearchInput) (Hybrid, error) {
	if in.IsZero() {
		return Hybrid{}, fmt.Errorf("%w: hybrid requires a non-zero search input", ErrInvalidInput)
	}
	return Hybrid{v: hybridVectorSearch{in: in}}, nil
}

// HybridNearText wraps a near-text query.
func HybridNearText(nt NearText) (Hybrid, error) {
	if nt.IsZero() {
		return Hybrid{}, fmt.Errorf("%w: hybrid requires a non-zero near text", ErrInvalidInput)
	}
	return Hybrid{v: hybridNearText{nt: nt}}, nil
}

// HybridNearVector wraps a thresholded near-vector query.
func HybridNearVector(nv NearVector) (Hybrid, error) {
	if nv.IsZero() {
		return Hybrid{}, fmt.Errorf("%w: hybrid requires a non-zero near vector", ErrInvalidInput)
	}
	return Hybrid{v: hybridNearVector{nv: nv}}, nil
}

// HybridFrom routes any supported shape to exactly one variant:
//
//   - string, []string, NearText: the near-text variant
//   - NearVector: the near-vector variant
//   - Hybrid: returned as is
//   - func(*HybridBuilder) (Hybrid, error): invoked with a fresh builder
//   - everything vector.From accepts (float slices, matrices, maps,
//     NamedVector, Vector, SearchInput, vector builder callback): the
//     vector-search variant
func HybridFrom(shape any) (Hybrid, error) {
	switch s := shape.(type) {
	case Hybrid:
		if s.v == nil {
			return Hybrid{}, fmt.Errorf("%w: zero hybrid", ErrInvalidInput)
		}
		return s, nil
	case string, []string:
		nt, err := NearTextFrom(s)
		if err != nil {
			return Hybrid{}, err
		}
		return HybridNearText(nt)
	case NearText:
		return HybridNearText(s)
	case NearVector:
		return HybridNearVector(s)
	case func(*HybridBuilder) (Hybrid, error):
		if s == nil {
			return Hybrid{}, fmt.Errorf("%w: nil builder callback", ErrInvalidInput)
		}
		return s(NewHybridBuilder())
	default:
		in, err := vector.From(shape)
		if err != nil {
			return Hybrid{}, err
		}
		return HybridVectorSearch(in)
	}
}

// Variant returns which union member is populated.
func (h Hybrid) Variant() HybridVariant {
	if h.v == nil {
		return HybridVariantInvalid
	}
	return h.v.hybridVariantTag()
}

// VectorSearch returns the vector-search member, if populated.
func (h Hybrid) VectorSearch() (vector.SearchInput, bool) {
	if w, ok := h.v.(hybridVectorSearch); ok {
		return w.in, true
	}
	return vector.SearchInput{}, false
}

// NearText returns the near-text member, if populated.
func (h Hybrid) NearText() (NearText, bool) {
	if w, ok := h.v.(hybridNearText); ok {
		return w.nt, true
	}
	return NearText{}, false
}

// NearVector returns the near-vector member, if populated.
func (h Hybrid) NearVector() (NearVector, bool) {
	if w, ok := h.v.(hybridNearVector); ok {
		return w.nv, true
	}
	return NearVector{}, false
}

// IsZero reports whether the value was never constructed.
func (h Hybrid) IsZero() bool { return h.v == nil }
