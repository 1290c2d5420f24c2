package filters

import "time"

// Condition is the interface all filter conditions implement. The weaviate
// package converts conditions into GraphQL where-filter operands.
type Condition interface {
	// isCondition is a marker to keep the condition set closed.
	isCondition()
}

// FilterSet groups conditions into Must (AND) and Should (OR) clauses. Both
// clauses may be present; they are AND-ed together.
//
// Weaviate's where grammar has no negation clause; use a negated match
// condition to exclude values.
type FilterSet struct {
	// Must: all conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: at least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
}

// ConditionSet holds the conditions of a single clause.
type ConditionSet struct {
	Conditions []Condition `json:"conditions,omitempty"`
}

// MatchCondition is an exact match on a property (field = value).
// Supported value types: string, bool, int, int64, float64, time.Time.
type MatchCondition struct {
	// Path addresses the property, outermost segment first.
	Path []string
	// Value is compared for equality.
	Value any
	// Negate turns the comparison into field != value.
	Negate bool
}

func (*MatchCondition) isCondition() {}

// MatchAnyCondition matches when the property equals any of the given values
// (IN semantics). Values must be homogeneous strings or integers.
type MatchAnyCondition struct {
	Path   []string
	Values []any
}

func (*MatchAnyCondition) isCondition() {}

// MatchAllCondition matches when an array property contains all of the given
// values.
type MatchAllCondition struct {
	Path   []string
	Values []any
}

func (*MatchAllCondition) isCondition() {}

// LikeCondition matches a text property against a wildcard pattern
// (* for any sequence, ? for one character).
type LikeCondition struct {
	Path    []string
	Pattern string
}

func (*LikeCondition) isCondition() {}

// NumericRange defines bounds for numeric filtering. Nil bounds are open.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"`
	Lt  *float64 `json:"lessThan,omitempty"`
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`
}

// NumericRangeCondition filters a numeric property by range. Multiple bounds
// become AND-ed operands.
type NumericRangeCondition struct {
	Path  []string
	Range NumericRange
}

func (*NumericRangeCondition) isCondition() {}

// TimeRange defines bounds for date filtering. Nil bounds are open.
type TimeRange struct {
	Gt  *time.Time `json:"after,omitempty"`
	Gte *time.Time `json:"atOrAfter,omitempty"`
	Lt  *time.Time `json:"before,omitempty"`
	Lte *time.Time `json:"atOrBefore,omitempty"`
}

// TimeRangeCondition filters a date property by range.
type TimeRangeCondition struct {
	Path  []string
	Range TimeRange
}

func (*TimeRangeCondition) isCondition() {}

// IsNullCondition matches objects where the property is (or is not) null.
type IsNullCondition struct {
	Path []string
	Null bool
}

func (*IsNullCondition) isCondition() {}
