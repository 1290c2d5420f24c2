package vector

import (
	"fmt"
	"sort"
)

// CombinationMethod is the rule for merging per-target similarity scores when
// a query targets more than one named vector.
type CombinationMethod int

const (
	// CombinationNone - no explicit combination; the only valid choice for
	// single-target queries.
	CombinationNone CombinationMethod = iota
	// CombinationSum - per-target scores are added.
	CombinationSum
	// CombinationAverage - per-target scores are averaged.
	CombinationAverage
	// CombinationMinimum - the lowest per-target score wins.
	CombinationMinimum
	// CombinationManualWeights - caller-supplied absolute weights, passed
	// through as given.
	CombinationManualWeights
	// CombinationRelativeScore - caller-supplied relative weights the server
	// normalizes. The client never pre-normalizes.
	CombinationRelativeScore
)

func (m CombinationMethod) String() string {
	switch m {
	case CombinationNone:
		return "none"
	case CombinationSum:
		return "sum"
	case CombinationAverage:
		return "average"
	case CombinationMinimum:
		return "minimum"
	case CombinationManualWeights:
		return "manualWeights"
	case CombinationRelativeScore:
		return "relativeScore"
	default:
		return fmt.Sprintf("combination(%d)", int(m))
	}
}

// Weighted reports whether the method requires a weight on every target.
func (m CombinationMethod) Weighted() bool {
	return m == CombinationManualWeights || m == CombinationRelativeScore
}

func (m CombinationMethod) valid() bool {
	return m >= CombinationNone && m <= CombinationRelativeScore
}

// Target is one (name, vector) entry of a SearchInput, carrying a weight when
// the input's combination method is weighted.
type Target struct {
	name   string
	vector Vector
	weight *float32
}

// Name returns the vector-space name this target addresses.
func (t Target) Name() string { return t.name }

// Vector returns the target's payload.
func (t Target) Vector() Vector { return t.vector }

// Weight returns the target's weight and whether one is set. Weights are only
// set for manual-weights and relative-score inputs.
func (t Target) Weight() (float32, bool) {
	if t.weight == nil {
		return 0, false
	}
	return *t.weight, true
}

// SearchInput is the canonical vector payload of a query: one or more named
// vector targets plus the method combining their scores. The zero value is
// invalid; construct via New, From or a Builder.
//
// SearchInput is immutable. Targets returns copies, and no method mutates a
// constructed value.
type SearchInput struct {
	targets []Target
	method  CombinationMethod
}

// New builds a SearchInput from explicit named vectors with no combination
// method. Duplicate names are rejected, never merged.
func New(entries ...NamedVector) (SearchInput, error) {
	return newInput(CombinationNone, nil, plainTargets(entries))
}

// Targets returns a copy of the input's target list in insertion order.
func (in SearchInput) Targets() []Target {
	out := make([]Target, len(in.targets))
	copy(out, in.targets)
	return out
}

// Method returns the combination method. For single-target inputs the method
// is inert: serialization omits the combination clause entirely.
func (in SearchInput) Method() CombinationMethod { return in.method }

// Len returns the number of targets.
func (in SearchInput) Len() int { return len(in.targets) }

// IsZero reports whether the input was never constructed.
func (in SearchInput) IsZero() bool { return in.targets == nil }

// Names returns the distinct target names in insertion order.
func (in SearchInput) Names() []string {
	names := make([]string, 0, len(in.targets))
	seen := make(map[string]struct{}, len(in.targets))
	for _, t := range in.targets {
		if _, ok := seen[t.name]; ok {
			continue
		}
		seen[t.name] = struct{}{}
		names = append(names, t.name)
	}
	return names
}

// Validate re-checks the construction invariants. Values built through this
// package always pass; the check exists for zero values smuggled in via
// struct literals. Duplicate names are tolerated here because the plural-map
// shape produces them deliberately.
func (in SearchInput) Validate() error {
	allowDup := make(map[string]struct{}, len(in.targets))
	for _, t := range in.targets {
		allowDup[t.name] = struct{}{}
	}
	_, err := newInput(in.method, allowDup, in.targets)
	return err
}

func plainTargets(entries []NamedVector) []Target {
	targets := make([]Target, len(entries))
	for i, e := range entries {
		targets[i] = Target{name: e.Name, vector: e.Vector}
	}
	return targets
}

// newInput is the single validation point for SearchInput construction.
// allowDup permits repeated names for the one shape that requests them
// deliberately (plural vectors per name); everything else rejects duplicates.
func newInput(method CombinationMethod, allowDup map[string]struct{}, targets []Target) (SearchInput, error) {
	if !method.valid() {
		return SearchInput{}, fmt.Errorf("%w: unknown combination method %d", ErrInvalidInput, int(method))
	}
	if len(targets) == 0 {
		return SearchInput{}, fmt.Errorf("%w: at least one vector target required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		nv := NamedVector{Name: t.name, Vector: t.vector}
		if err := nv.validate(); err != nil {
			return SearchInput{}, err
		}
		if _, dup := seen[t.name]; dup {
			if _, ok := allowDup[t.name]; !ok {
				return SearchInput{}, fmt.Errorf("%w: duplicate vector target %q", ErrInvalidInput, t.name)
			}
		}
		seen[t.name] = struct{}{}

		if method.Weighted() {
			if t.weight == nil {
				return SearchInput{}, fmt.Errorf("%w: combination method %s requires a weight on target %q",
					ErrInvalidInput, method, t.name)
			}
		} else if t.weight != nil {
			return SearchInput{}, fmt.Errorf("%w: combination method %s does not take weights (target %q)",
				ErrInvalidInput, method, t.name)
		}
	}

	owned := make([]Target, len(targets))
	copy(owned, targets)
	return SearchInput{targets: owned, method: method}, nil
}

// From normalizes any supported caller shape into a SearchInput:
//
//   - []float32, []float64: one single-vector target named "default"
//   - [][]float32, [][]float64: one multi-vector target named "default"
//   - Vector: one target named "default"
//   - NamedVector, []NamedVector: passed through unchanged
//   - map[string][]float32, map[string][]float64: one single target per key
//   - map[string][][]float32, map[string][][]float64: one multi target per key
//   - map[string]Vector: one target per key
//   - map[string][]Vector: several payloads per key, passed through in order
//   - SearchInput: returned as is
//   - func(*Builder) (SearchInput, error): invoked with a fresh Builder
//
// Map-derived targets are ordered by name so equal inputs serialize
// identically regardless of map iteration order.
func From(shape any) (SearchInput, error) {
	switch s := shape.(type) {
	case SearchInput:
		if s.IsZero() {
			return SearchInput{}, fmt.Errorf("%w: zero search input", ErrInvalidInput)
		}
		return s, nil
	case Vector:
		return New(Named(DefaultName, s))
	case NamedVector:
		return New(s)
	case []NamedVector:
		return New(s...)
	case []float32:
		return New(Named(DefaultName, Single(s...)))
	case []float64:
		return New(Named(DefaultName, Single(s...)))
	case [][]float32:
		return New(Named(DefaultName, Multi(s...)))
	case [][]float64:
		return New(Named(DefaultName, Multi(s...)))
	case map[string][]float32:
		return fromVectorMap(s, SingleFrom[float32])
	case map[string][]float64:
		return fromVectorMap(s, SingleFrom[float64])
	case map[string][][]float32:
		return fromVectorMap(s, MultiFrom[float32])
	case map[string][][]float64:
		return fromVectorMap(s, MultiFrom[float64])
	case map[string]Vector:
		return fromVectorMap(s, func(v Vector) Vector { return v })
	case map[string][]Vector:
		return fromPluralMap(s)
	case func(*Builder) (SearchInput, error):
		if s == nil {
			return SearchInput{}, fmt.Errorf("%w: nil builder callback", ErrInvalidInput)
		}
		return s(&Builder{})
	default:
		return SearchInput{}, fmt.Errorf("%w: unsupported search input shape %T", ErrInvalidInput, shape)
	}
}

// MustFrom is From for statically known-good shapes; it panics on error.
// Intended for tests and package-level literals only.
func MustFrom(shape any) SearchInput {
	in, err := From(shape)
	if err != nil {
		panic(err)
	}
	return in
}

func fromVectorMap[P any](m map[string]P, convert func(P) Vector) (SearchInput, error) {
	entries := make([]NamedVector, 0, len(m))
	for _, name := range sortedKeys(m) {
		entries = append(entries, Named(name, convert(m[name])))
	}
	return New(entries...)
}

// fromPluralMap keeps several payloads under one name. This is the only
// construction path that produces duplicate target names; per-name order is
// preserved, names are sorted.
func fromPluralMap(m map[string][]Vector) (SearchInput, error) {
	var targets []Target
	allowDup := make(map[string]struct{}, len(m))
	for _, name := range sortedKeys(m) {
		vs := m[name]
		if len(vs) == 0 {
			return SearchInput{}, fmt.Errorf("%w: no vectors given for target %q", ErrInvalidInput, name)
		}
		if len(vs) > 1 {
			allowDup[name] = struct{}{}
		}
		for _, v := range vs {
			targets = append(targets, Target{name: name, vector: v})
		}
	}
	return newInput(CombinationNone, allowDup, targets)
}

func sortedKeys[P any](m map[string]P) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
