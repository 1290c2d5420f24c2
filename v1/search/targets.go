package search

import (
	"fmt"

	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// TargetEntry is one named target of a TargetVectors value, carrying a weight
// when the combination method is weighted.
type TargetEntry struct {
	name   string
	weight *float32
}

// Name returns the target's vector-space name.
func (e TargetEntry) Name() string { return e.name }

// Weight returns the target's weight and whether one is set.
func (e TargetEntry) Weight() (float32, bool) {
	if e.weight == nil {
		return 0, false
	}
	return *e.weight, true
}

// TargetVectors names which vector spaces a query addresses and how their
// scores combine, without carrying payloads. The zero value is invalid;
// construct via Targets, the Target* factories or a TargetsBuilder.
//
// Weights on weighted methods are passed through exactly as given; the
// client never normalizes. Whether they should sum to one is the caller's
// (and the server's) business.
type TargetVectors struct {
	entries []TargetEntry
	method  vector.CombinationMethod
}

// Targets builds a TargetVectors with no combination method from a bare name
// list. Exactly one name is required: naming several targets without saying
// how to combine them is rejected here, at construction, rather than when the
// request is assembled.
func Targets(names ...string) (TargetVectors, error) {
	if len(names) > 1 {
		return TargetVectors{}, fmt.Errorf("%w: %d target vectors given without a combination method",
			ErrInvalidInput, len(names))
	}
	return newTargets(vector.CombinationNone, plainEntries(names))
}

// TargetSum targets the given names with sum score combination.
func TargetSum(names ...string) (TargetVectors, error) {
	return newTargets(vector.CombinationSum, plainEntries(names))
}

// TargetAverage targets the given names with average score combination.
func TargetAverage(names ...string) (TargetVectors, error) {
	return newTargets(vector.CombinationAverage, plainEntries(names))
}

// TargetMinimum targets the given names with minimum score combination.
func TargetMinimum(names ...string) (TargetVectors, error) {
	return newTargets(vector.CombinationMinimum, plainEntries(names))
}

// WeightedName is one (name, weight) entry for the weighted target methods.
type WeightedName struct {
	Name   string
	Weight float32
}

// Weight pairs a target name with a weight.
func Weight(name string, w float32) WeightedName {
	return WeightedName{Name: name, Weight: w}
}

// TargetManualWeights targets the given names with caller-supplied absolute
// weights, passed through as given.
func TargetManualWeights(entries ...WeightedName) (TargetVectors, error) {
	return newTargets(vector.CombinationManualWeights, weightedEntries(entries))
}

// TargetRelativeScore targets the given names with relative weights the
// server normalizes.
func TargetRelativeScore(entries ...WeightedName) (TargetVectors, error) {
	return newTargets(vector.CombinationRelativeScore, weightedEntries(entries))
}

// Entries returns a copy of the target entries in insertion order.
func (t TargetVectors) Entries() []TargetEntry {
	out := make([]TargetEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Names returns the target names in insertion order.
func (t TargetVectors) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}

// Method returns the combination method.
func (t TargetVectors) Method() vector.CombinationMethod { return t.method }

// Len returns the number of targets.
func (t TargetVectors) Len() int { return len(t.entries) }

// IsZero reports whether the value was never constructed.
func (t TargetVectors) IsZero() bool { return t.entries == nil }

func plainEntries(names []string) []TargetEntry {
	entries := make([]TargetEntry, len(names))
	for i, n := range names {
		entries[i] = TargetEntry{name: n}
	}
	return entries
}

func weightedEntries(entries []WeightedName) []TargetEntry {
	out := make([]TargetEntry, len(entries))
	for i, e := range entries {
		w := e.Weight
		out[i] = TargetEntry{name: e.Name, weight: &w}
	}
	return out
}

func newTargets(method vector.CombinationMethod, entries []TargetEntry) (TargetVectors, error) {
	if len(entries) == 0 {
		return TargetVectors{}, fmt.Errorf("%w: at least one target vector name required", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.name == "" {
			return TargetVectors{}, fmt.Errorf("%w: target vector name must not be empty", ErrInvalidInput)
		}
		if _, dup := seen[e.name]; dup {
			return TargetVectors{}, fmt.Errorf("%w: duplicate target vector %q", ErrInvalidInput, e.name)
		}
		seen[e.name] = struct{}{}
		if method.Weighted() != (e.weight != nil) {
			return TargetVectors{}, fmt.Errorf("%w: combination method %s and weight on target %q do not agree",
				ErrInvalidInput, method, e.name)
		}
	}
	owned := make([]TargetEntry, len(entries))
	copy(owned, entries)
	return TargetVectors{entries: owned, method: method}, nil
}

// TargetsBuilder mirrors vector.Builder for payload-less targets. It carries
// no state and is safe for concurrent reuse.
type TargetsBuilder struct{}

// Sum targets the given names with sum combination.
func (*TargetsBuilder) Sum(names ...string) (TargetVectors, error) {
	return TargetSum(names...)
}

// Average targets the given names with average combination.
func (*TargetsBuilder) Average(names ...string) (TargetVectors, error) {
	return TargetAverage(names...)
}

// Minimum targets the given names with minimum combination.
func (*TargetsBuilder) Minimum(names ...string) (TargetVectors, error) {
	return TargetMinimum(names...)
}

// ManualWeights targets the given names with absolute weights.
func (*TargetsBuilder) ManualWeights(entries ...WeightedName) (TargetVectors, error) {
	return TargetManualWeights(entries...)
}

// RelativeScore targets the given names with server-normalized weights.
func (*TargetsBuilder) RelativeScore(entries ...WeightedName) (TargetVectors, error) {
	return TargetRelativeScore(entries...)
}

// TargetsFrom normalizes supported shapes into a TargetVectors: a bare string
// or string list (no combination method, single name only), an existing
// TargetVectors, or a builder callback.
func TargetsFrom(shape any) (TargetVectors, error) {
	switch s := shape.(type) {
	case TargetVectors:
		if s.IsZero() {
			return TargetVectors{}, fmt.Errorf("%w: zero target vectors", ErrInvalidInput)
		}
		return s, nil
	case string:
		return Targets(s)
	case []string:
		return Targets(s...)
	case func(*TargetsBuilder) (TargetVectors, error):
		if s == nil {
			return TargetVectors{}, fmt.Errorf("%w: nil builder callback", ErrInvalidInput)
		}
		return s(&TargetsBuilder{})
	default:
		return TargetVectors{}, fmt.Errorf("%w: unsupported target vectors shape %T", ErrInvalidInput, shape)
	}
}
