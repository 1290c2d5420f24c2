package search

import (
	"fmt"

	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// thresholds holds the optional similarity bounds shared by near-vector and
// near-text queries. Certainty and distance are alternatives; the server
// accepts one, but the client surfaces both when set instead of dropping one.
type thresholds struct {
	certainty *float32
	distance  *float32
}

// NearVectorOption configures a NearVector at construction.
type NearVectorOption interface {
	applyNearVector(*NearVector)
}

// NearTextOption configures a NearText at construction.
type NearTextOption interface {
	applyNearText(*NearText)
}

// ThresholdOption applies to both near-vector and near-text queries.
type ThresholdOption func(*thresholds)

func (o ThresholdOption) applyNearVector(nv *NearVector) { o(&nv.th) }
func (o ThresholdOption) applyNearText(nt *NearText)     { o(&nt.th) }

// WithCertainty bounds results to a normalized similarity in [0,1].
// Usable on both NewNearVector and NewNearText.
func WithCertainty(c float32) ThresholdOption {
	return func(th *thresholds) { th.certainty = &c }
}

// WithDistance bounds results to a raw, metric-dependent distance.
// Usable on both NewNearVector and NewNearText.
func WithDistance(d float32) ThresholdOption {
	return func(th *thresholds) { th.distance = &d }
}

// NearVector pairs a vector payload with optional similarity thresholds.
// The zero value is invalid; construct via NewNearVector or NearVectorFrom.
type NearVector struct {
	input vector.SearchInput
	th    thresholds
}

// NewNearVector wraps a SearchInput with optional thresholds.
func NewNearVector(in vector.SearchInput, opts ...NearVectorOption) (NearVector, error) {
	if in.IsZero() {
		return NearVector{}, fmt.Errorf("%w: near vector requires a search input", ErrInvalidInput)
	}
	nv := NearVector{input: in}
	for _, opt := range opts {
		opt.applyNearVector(&nv)
	}
	return nv, nil
}

// NearVectorFrom builds the inner SearchInput from any shape vector.From
// accepts, including a builder callback.
func NearVectorFrom(shape any, opts ...NearVectorOption) (NearVector, error) {
	in, err := vector.From(shape)
	if err != nil {
		return NearVector{}, err
	}
	return NewNearVector(in, opts...)
}

// Input returns the wrapped vector payload.
func (nv NearVector) Input() vector.SearchInput { return nv.input }

// Certainty returns the certainty threshold and whether one is set.
func (nv NearVector) Certainty() (float32, bool) { return deref(nv.th.certainty) }

// Distance returns the distance threshold and whether one is set.
func (nv NearVector) Distance() (float32, bool) { return deref(nv.th.distance) }

// IsZero reports whether the value was never constructed.
func (nv NearVector) IsZero() bool { return nv.input.IsZero() }

// Move nudges the effective near-text query vector toward or away from
// auxiliary concepts. Force is conceptually in [0,1] but passed through
// unvalidated; out-of-range values are the server's to reject.
type Move struct {
	// Concepts are the auxiliary concept strings.
	Concepts []string

	// Force is the nudge magnitude.
	Force float32
}

// TextOption applies only to near-text queries.
type TextOption func(*NearText)

func (o TextOption) applyNearText(nt *NearText) { o(nt) }

// WithTargetVectors attaches a target-vector specification to a NearText.
func WithTargetVectors(t TargetVectors) TextOption {
	return func(nt *NearText) { nt.targets = t }
}

// WithMoveTo nudges the query vector toward the given concepts.
func WithMoveTo(m Move) TextOption {
	return func(nt *NearText) { nt.moveTo = &m }
}

// WithMoveAway nudges the query vector away from the given concepts.
func WithMoveAway(m Move) TextOption {
	return func(nt *NearText) { nt.moveAway = &m }
}

// NearText is a server-vectorized text query: one or more concept strings
// (semantically OR'd), optional target vectors, thresholds, and concept
// movement. The zero value is invalid; construct via NewNearText or
// NearTextFrom.
type NearText struct {
	queries  []string
	targets  TargetVectors
	th       thresholds
	moveTo   *Move
	moveAway *Move
}

// NewNearText builds a near-text query from one or more concept strings.
// An empty list or an empty string is rejected.
func NewNearText(queries []string, opts ...NearTextOption) (NearText, error) {
	if len(queries) == 0 {
		return NearText{}, fmt.Errorf("%w: near text requires at least one query string", ErrInvalidInput)
	}
	owned := make([]string, len(queries))
	for i, q := range queries {
		if q == "" {
			return NearText{}, fmt.Errorf("%w: near text query string must not be empty", ErrInvalidInput)
		}
		owned[i] = q
	}
	nt := NearText{queries: owned}
	for _, opt := range opts {
		opt.applyNearText(&nt)
	}
	return nt, nil
}

// NearTextFrom accepts a bare string, a string list, an existing NearText, or
// a query-seeded builder callback.
func NearTextFrom(shape any, opts ...NearTextOption) (NearText, error) {
	switch s := shape.(type) {
	case NearText:
		if s.IsZero() {
			return NearText{}, fmt.Errorf("%w: zero near text", ErrInvalidInput)
		}
		return s, nil
	case string:
		return NewNearText([]string{s}, opts...)
	case []string:
		return NewNearText(s, opts...)
	default:
		return NearText{}, fmt.Errorf("%w: unsupported near text shape %T", ErrInvalidInput, shape)
	}
}

// Queries returns a copy of the concept strings.
func (nt NearText) Queries() []string {
	out := make([]string, len(nt.queries))
	copy(out, nt.queries)
	return out
}

// TargetVectors returns the attached target specification and whether one is
// set.
func (nt NearText) TargetVectors() (TargetVectors, bool) {
	return nt.targets, !nt.targets.IsZero()
}

// Certainty returns the certainty threshold and whether one is set.
func (nt NearText) Certainty() (float32, bool) { return deref(nt.th.certainty) }

// Distance returns the distance threshold and whether one is set.
func (nt NearText) Distance() (float32, bool) { return deref(nt.th.distance) }

// MoveTo returns the moveTo directive and whether one is set.
func (nt NearText) MoveTo() (Move, bool) {
	if nt.moveTo == nil {
		return Move{}, false
	}
	return *nt.moveTo, true
}

// MoveAway returns the moveAway directive and whether one is set.
func (nt NearText) MoveAway() (Move, bool) {
	if nt.moveAway == nil {
		return Move{}, false
	}
	return *nt.moveAway, true
}

// IsZero reports whether the value was never constructed.
func (nt NearText) IsZero() bool { return nt.queries == nil }

// NearTextBuilder is a query-seeded builder: it holds the concept strings and
// options, and its combination methods attach target vectors fluently,
// returning the finished NearText.
type NearTextBuilder struct {
	queries []string
	opts    []NearTextOption
}

// NearTextWith seeds a builder with queries and options. Combination methods
// on the result finalize the NearText.
func NearTextWith(queries []string, opts ...NearTextOption) *NearTextBuilder {
	return &NearTextBuilder{queries: queries, opts: opts}
}

func (b *NearTextBuilder) finish(t TargetVectors, err error) (NearText, error) {
	if err != nil {
		return NearText{}, err
	}
	opts := append(append([]NearTextOption{}, b.opts...), WithTargetVectors(t))
	return NewNearText(b.queries, opts...)
}

// Sum attaches sum-combined targets and returns the NearText.
func (b *NearTextBuilder) Sum(names ...string) (NearText, error) {
	return b.finish(TargetSum(names...))
}

// Average attaches average-combined targets and returns the NearText.
func (b *NearTextBuilder) Average(names ...string) (NearText, error) {
	return b.finish(TargetAverage(names...))
}

// Minimum attaches minimum-combined targets and returns the NearText.
func (b *NearTextBuilder) Minimum(names ...string) (NearText, error) {
	return b.finish(TargetMinimum(names...))
}

// ManualWeights attaches manually weighted targets and returns the NearText.
func (b *NearTextBuilder) ManualWeights(entries ...WeightedName) (NearText, error) {
	return b.finish(TargetManualWeights(entries...))
}

// RelativeScore attaches relative-score targets and returns the NearText.
func (b *NearTextBuilder) RelativeScore(entries ...WeightedName) (NearText, error) {
	return b.finish(TargetRelativeScore(entries...))
}

// Done returns the NearText without target vectors.
func (b *NearTextBuilder) Done() (NearText, error) {
	return NewNearText(b.queries, b.opts...)
}

func deref(v *float32) (float32, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
