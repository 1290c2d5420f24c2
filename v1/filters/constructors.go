package filters

import "time"

// NewFilterSet assembles a FilterSet from clause helpers.
//
// Example:
//
//	filters.NewFilterSet(
//	    filters.Must(filters.NewMatch("status", "published")),
//	    filters.Should(filters.NewMatch("tag", "ml"), filters.NewMatch("tag", "ai")),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates the AND clause: every condition must match.
func Must(conditions ...Condition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates the OR clause: at least one condition must match.
func Should(conditions ...Condition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// IsEmpty reports whether the set carries no conditions at all.
func (fs *FilterSet) IsEmpty() bool {
	if fs == nil {
		return true
	}
	return clauseEmpty(fs.Must) && clauseEmpty(fs.Should)
}

func clauseEmpty(cs *ConditionSet) bool {
	return cs == nil || len(cs.Conditions) == 0
}

// NewMatch creates an equality condition on a top-level property.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Path: []string{field}, Value: value}
}

// NewNotMatch creates an inequality condition on a top-level property.
func NewNotMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Path: []string{field}, Value: value, Negate: true}
}

// NewPathMatch creates an equality condition on a nested property path.
func NewPathMatch(path []string, value any) *MatchCondition {
	return &MatchCondition{Path: path, Value: value}
}

// NewMatchAny creates an IN condition.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Path: []string{field}, Values: values}
}

// NewMatchAll creates a contains-all condition for array properties.
func NewMatchAll(field string, values ...any) *MatchAllCondition {
	return &MatchAllCondition{Path: []string{field}, Values: values}
}

// NewLike creates a wildcard pattern condition on a text property.
func NewLike(field, pattern string) *LikeCondition {
	return &LikeCondition{Path: []string{field}, Pattern: pattern}
}

// NewNumericRange creates a numeric range condition.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Path: []string{field}, Range: r}
}

// NewTimeRange creates a date range condition.
func NewTimeRange(field string, r TimeRange) *TimeRangeCondition {
	return &TimeRangeCondition{Path: []string{field}, Range: r}
}

// NewIsNull matches objects where the property is null.
func NewIsNull(field string) *IsNullCondition {
	return &IsNullCondition{Path: []string{field}, Null: true}
}

// NewIsNotNull matches objects where the property is set.
func NewIsNotNull(field string) *IsNullCondition {
	return &IsNullCondition{Path: []string{field}, Null: false}
}

// After is a convenience bound for TimeRange.
func After(t time.Time) *time.Time { return &t }

// Bound is a convenience bound for NumericRange.
func Bound(v float64) *float64 { return &v }
