package search

import (
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// HybridBuilder is the fluent entry point for constructing a Hybrid. The two
// entry methods pick a variant and return an inner builder whose combination
// methods finalize the Hybrid in one call:
//
//	h, err := search.NewHybridBuilder().
//	    NearVector(search.WithCertainty(0.7)).
//	    ManualWeights(
//	        vector.WeightedSingle("title", 1.2, 1, 2),
//	        vector.WeightedSingle("desc", 0.8, 3, 4),
//	    )
type HybridBuilder struct{}

// NewHybridBuilder returns a builder. Builders carry no state until an entry
// method is called and can be reused.
func NewHybridBuilder() *HybridBuilder {
	return &HybridBuilder{}
}

// NearVector selects the near-vector variant. The returned inner builder's
// combination methods supply the vector payload and finalize the Hybrid.
func (*HybridBuilder) NearVector(opts ...NearVectorOption) *HybridNearVectorBuilder {
	return &HybridNearVectorBuilder{opts: opts}
}

// NearText selects the near-text variant, seeded with the given queries. The
// returned inner builder's combination methods attach target vectors (by
// name) and finalize the Hybrid.
func (*HybridBuilder) NearText(queries []string, opts ...NearTextOption) *HybridNearTextBuilder {
	return &HybridNearTextBuilder{text: NearTextWith(queries, opts...)}
}

// HybridNearVectorBuilder finalizes a near-vector Hybrid. It exposes the same
// combination methods as vector.Builder; each call builds the inner
// SearchInput, wraps it with the thresholds given at entry, and returns the
// finished Hybrid.
type HybridNearVectorBuilder struct {
	opts []NearVectorOption
}

func (b *HybridNearVectorBuilder) finish(in vector.SearchInput, err error) (Hybrid, error) {
	if err != nil {
		return Hybrid{}, err
	}
	nv, err := NewNearVector(in, b.opts...)
	if err != nil {
		return Hybrid{}, err
	}
	return HybridNearVector(nv)
}

// Vector finalizes with an unconstrained payload built from any shape
// vector.From accepts.
func (b *HybridNearVectorBuilder) Vector(shape any) (Hybrid, error) {
	return b.finish(vector.From(shape))
}

// Sum finalizes with sum-combined targets.
func (b *HybridNearVectorBuilder) Sum(entries ...vector.NamedVector) (Hybrid, error) {
	return b.finish(vector.Sum(entries...))
}

// Average finalizes with average-combined targets.
func (b *HybridNearVectorBuilder) Average(entries ...vector.NamedVector) (Hybrid, error) {
	return b.finish(vector.Average(entries...))
}

// Minimum finalizes with minimum-combined targets.
func (b *HybridNearVectorBuilder) Minimum(entries ...vector.NamedVector) (Hybrid, error) {
	return b.finish(vector.Minimum(entries...))
}

// ManualWeights finalizes with manually weighted targets.
func (b *HybridNearVectorBuilder) ManualWeights(entries ...vector.WeightedVector) (Hybrid, error) {
	return b.finish(vector.ManualWeights(entries...))
}

// RelativeScore finalizes with relative-score targets.
func (b *HybridNearVectorBuilder) RelativeScore(entries ...vector.WeightedVector) (Hybrid, error) {
	return b.finish(vector.RelativeScore(entries...))
}

// HybridNearTextBuilder finalizes a near-text Hybrid. Its combination methods
// operate on target names, mirroring TargetsBuilder.
type HybridNearTextBuilder struct {
	text *NearTextBuilder
}

func (b *HybridNearTextBuilder) finish(nt NearText, err error) (Hybrid, error) {
	if err != nil {
		return Hybrid{}, err
	}
	return HybridNearText(nt)
}

// Sum finalizes with sum-combined target names.
func (b *HybridNearTextBuilder) Sum(names ...string) (Hybrid, error) {
	return b.finish(b.text.Sum(names...))
}

// Average finalizes with average-combined target names.
func (b *HybridNearTextBuilder) Average(names ...string) (Hybrid, error) {
	return b.finish(b.text.Average(names...))
}

// Minimum finalizes with minimum-combined target names.
func (b *HybridNearTextBuilder) Minimum(names ...string) (Hybrid, error) {
	return b.finish(b.text.Minimum(names...))
}

// ManualWeights finalizes with manually weighted target names.
func (b *HybridNearTextBuilder) ManualWeights(entries ...WeightedName) (Hybrid, error) {
	return b.finish(b.text.ManualWeights(entries...))
}

// RelativeScore finalizes with relative-score target names.
func (b *HybridNearTextBuilder) RelativeScore(entries ...WeightedName) (Hybrid, error) {
	return b.finish(b.text.RelativeScore(entries...))
}

// Done finalizes without target vectors.
func (b *HybridNearTextBuilder) Done() (Hybrid, error) {
	return b.finish(b.text.Done())
}
