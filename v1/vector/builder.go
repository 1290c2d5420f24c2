package vector

// WeightedVector is one (name, weight, vector) entry for the weighted
// combination methods.
type WeightedVector struct {
	// Name is the vector space this payload targets.
	Name string

	// Weight is the caller-supplied weight. Manual weights are absolute;
	// relative-score weights are proportions the server normalizes.
	Weight float32

	// Vector is the embedding payload.
	Vector Vector
}

// Weighted pairs a name and weight with an existing vector.
func Weighted(name string, weight float32, v Vector) WeightedVector {
	return WeightedVector{Name: name, Weight: weight, Vector: v}
}

// WeightedSingle pairs a name and weight with a single vector built from
// values.
func WeightedSingle[T Float](name string, weight float32, values ...T) WeightedVector {
	return WeightedVector{Name: name, Weight: weight, Vector: Single(values...)}
}

// Builder constructs SearchInputs with an explicit combination method, one
// method per call. It carries no state; a single Builder can be reused and is
// safe for concurrent use.
//
// Each method returns a fully validated SearchInput; no partially built
// value ever escapes. Calling a combination method with exactly one target is
// legal; the method stays set on the value but serialization drops the
// combination clause for single-target inputs.
type Builder struct{}

// Sum combines the given targets by adding their scores.
func (*Builder) Sum(entries ...NamedVector) (SearchInput, error) {
	return newInput(CombinationSum, nil, plainTargets(entries))
}

// Average combines the given targets by averaging their scores.
func (*Builder) Average(entries ...NamedVector) (SearchInput, error) {
	return newInput(CombinationAverage, nil, plainTargets(entries))
}

// Minimum combines the given targets by taking the lowest score.
func (*Builder) Minimum(entries ...NamedVector) (SearchInput, error) {
	return newInput(CombinationMinimum, nil, plainTargets(entries))
}

// ManualWeights combines the given targets with caller-supplied absolute
// weights. Every entry must carry a weight; the weights are passed through as
// given, without normalization.
func (*Builder) ManualWeights(entries ...WeightedVector) (SearchInput, error) {
	return newInput(CombinationManualWeights, nil, weightedTargets(entries))
}

// RelativeScore combines the given targets with relative weights the server
// normalizes. The client passes them through untouched.
func (*Builder) RelativeScore(entries ...WeightedVector) (SearchInput, error) {
	return newInput(CombinationRelativeScore, nil, weightedTargets(entries))
}

func weightedTargets(entries []WeightedVector) []Target {
	targets := make([]Target, len(entries))
	for i, e := range entries {
		w := e.Weight
		targets[i] = Target{name: e.Name, vector: e.Vector, weight: &w}
	}
	return targets
}

// Package-level shorthands mirroring the Builder methods.

// Sum builds a sum-combined SearchInput.
func Sum(entries ...NamedVector) (SearchInput, error) {
	return (*Builder)(nil).Sum(entries...)
}

// Average builds an average-combined SearchInput.
func Average(entries ...NamedVector) (SearchInput, error) {
	return (*Builder)(nil).Average(entries...)
}

// Minimum builds a minimum-combined SearchInput.
func Minimum(entries ...NamedVector) (SearchInput, error) {
	return (*Builder)(nil).Minimum(entries...)
}

// ManualWeights builds a manual-weights SearchInput.
func ManualWeights(entries ...WeightedVector) (SearchInput, error) {
	return (*Builder)(nil).ManualWeights(entries...)
}

// RelativeScore builds a relative-score SearchInput.
func RelativeScore(entries ...WeightedVector) (SearchInput, error) {
	return (*Builder)(nil).RelativeScore(entries...)
}
