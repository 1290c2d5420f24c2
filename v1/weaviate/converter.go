package weaviate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/weaviate/v1/filters"
	"github.com/Aleph-Alpha/weaviate/v1/search"
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

//
// GraphQL serialization of search inputs, target combinations and filters.
//
// Values arriving here were validated at construction by the vector and
// search packages: no empty target lists, no missing weights, no
// dual-populated unions. The converter therefore only walks and emits.
// Output is deterministic: targets keep insertion order and map-derived
// targets were sorted by the vector package.
//

// ── Scalar formatting ────────────────────────────────────────────────────────

func gqlFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func gqlFloat64(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func gqlFloats(vs []float32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = gqlFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func gqlMatrix(rows [][]float32) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = gqlFloats(row)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func gqlStrings(ss []string) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ── Vector payloads ──────────────────────────────────────────────────────────

// buildSearchInputArgs emits the vector payload of a SearchInput as GraphQL
// argument fields: `vector: [...]` for the degenerate default-named single
// target, otherwise `vectorPerTarget: {...}` plus a targets clause.
func buildSearchInputArgs(in vector.SearchInput) string {
	targets := in.Targets()

	if len(targets) == 1 && targets[0].Name() == vector.DefaultName {
		return "vector: " + gqlVectorPayload(targets[0].Vector())
	}

	// Group payloads by name, keeping first-appearance order. Duplicate
	// names only occur via the plural-map shape.
	order := make([]string, 0, len(targets))
	byName := make(map[string][]vector.Vector, len(targets))
	for _, t := range targets {
		if _, ok := byName[t.Name()]; !ok {
			order = append(order, t.Name())
		}
		byName[t.Name()] = append(byName[t.Name()], t.Vector())
	}

	entries := make([]string, len(order))
	for i, name := range order {
		vs := byName[name]
		if len(vs) == 1 {
			entries[i] = name + ": " + gqlVectorPayload(vs[0])
			continue
		}
		payloads := make([]string, len(vs))
		for j, v := range vs {
			payloads[j] = gqlVectorPayload(v)
		}
		entries[i] = name + ": [" + strings.Join(payloads, ", ") + "]"
	}

	args := "vectorPerTarget: {" + strings.Join(entries, ", ") + "}"

	weights := make(map[string]float32, len(targets))
	for _, t := range targets {
		if w, ok := t.Weight(); ok {
			weights[t.Name()] = w
		}
	}
	if clause := buildTargetsClause(targetNames(targets), in.Method(), weights); clause != "" {
		args += ", " + clause
	}
	return args
}

func gqlVectorPayload(v vector.Vector) string {
	if v.Kind() == vector.KindMulti {
		return gqlMatrix(v.Rows())
	}
	return gqlFloats(v.Values())
}

func targetNames(targets []vector.Target) []string {
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = t.Name()
	}
	return names
}

// buildTargetsClause emits `targets: {targetVectors: [...], ...}`. The
// combination method is dropped for single-target inputs; single-target
// requests never need one on the wire.
func buildTargetsClause(names []string, method vector.CombinationMethod, weights map[string]float32) string {
	fields := []string{"targetVectors: " + gqlStrings(names)}

	distinct := make(map[string]struct{}, len(names))
	for _, n := range names {
		distinct[n] = struct{}{}
	}
	if len(distinct) > 1 && method != vector.CombinationNone {
		fields = append(fields, "combinationMethod: "+method.String())
		if len(weights) > 0 {
			entries := make([]string, 0, len(names))
			seen := make(map[string]struct{}, len(names))
			for _, n := range names {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				entries = append(entries, n+": "+gqlFloat(weights[n]))
			}
			fields = append(fields, "weights: {"+strings.Join(entries, ", ")+"}")
		}
	}

	return "targets: {" + strings.Join(fields, ", ") + "}"
}

func buildTargetVectorsClause(t search.TargetVectors) string {
	entries := t.Entries()
	names := make([]string, len(entries))
	weights := make(map[string]float32, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		if w, ok := e.Weight(); ok {
			weights[e.Name()] = w
		}
	}
	return buildTargetsClause(names, t.Method(), weights)
}

// ── Query arguments ──────────────────────────────────────────────────────────

func buildNearVectorArg(nv search.NearVector) string {
	fields := []string{buildSearchInputArgs(nv.Input())}
	// Both thresholds are surfaced when set; the server arbitrates.
	if c, ok := nv.Certainty(); ok {
		fields = append(fields, "certainty: "+gqlFloat(c))
	}
	if d, ok := nv.Distance(); ok {
		fields = append(fields, "distance: "+gqlFloat(d))
	}
	return "nearVector: {" + strings.Join(fields, ", ") + "}"
}

func buildNearTextArg(nt search.NearText) string {
	fields := []string{"concepts: " + gqlStrings(nt.Queries())}
	if c, ok := nt.Certainty(); ok {
		fields = append(fields, "certainty: "+gqlFloat(c))
	}
	if d, ok := nt.Distance(); ok {
		fields = append(fields, "distance: "+gqlFloat(d))
	}
	if m, ok := nt.MoveTo(); ok {
		fields = append(fields, "moveTo: "+buildMoveArg(m))
	}
	if m, ok := nt.MoveAway(); ok {
		fields = append(fields, "moveAwayFrom: "+buildMoveArg(m))
	}
	if t, ok := nt.TargetVectors(); ok {
		fields = append(fields, buildTargetVectorsClause(t))
	}
	return "nearText: {" + strings.Join(fields, ", ") + "}"
}

func buildMoveArg(m search.Move) string {
	return fmt.Sprintf("{concepts: %s, force: %s}", gqlStrings(m.Concepts), gqlFloat(m.Force))
}

func buildHybridArg(keyword string, input search.Hybrid, alpha *float32) string {
	fields := []string{"query: " + strconv.Quote(keyword)}
	if alpha != nil {
		fields = append(fields, "alpha: "+gqlFloat(*alpha))
	}

	switch input.Variant() {
	case search.HybridVariantVectorSearch:
		in, _ := input.VectorSearch()
		fields = append(fields, buildSearchInputArgs(in))
	case search.HybridVariantNearVector:
		nv, _ := input.NearVector()
		fields = append(fields, "searches: {"+buildNearVectorArg(nv)+"}")
	case search.HybridVariantNearText:
		nt, _ := input.NearText()
		fields = append(fields, "searches: {"+buildNearTextArg(nt)+"}")
	}

	return "hybrid: {" + strings.Join(fields, ", ") + "}"
}

// buildSearchQuery assembles the full GraphQL Get query for one request.
func buildSearchQuery(req SearchRequest, defaultLimit int) (string, error) {
	if req.Collection == "" {
		return "", fmt.Errorf("%w: collection name cannot be empty", vector.ErrInvalidInput)
	}
	if req.Query == nil {
		return "", fmt.Errorf("%w: search request carries no query", vector.ErrInvalidInput)
	}

	var modeArg string
	switch q := req.Query.(type) {
	case nearVectorQuery:
		if q.nv.IsZero() {
			return "", fmt.Errorf("%w: zero near vector", vector.ErrInvalidInput)
		}
		modeArg = buildNearVectorArg(q.nv)
	case nearTextQuery:
		if q.nt.IsZero() {
			return "", fmt.Errorf("%w: zero near text", vector.ErrInvalidInput)
		}
		modeArg = buildNearTextArg(q.nt)
	case hybridQuery:
		if q.input.IsZero() {
			return "", fmt.Errorf("%w: zero hybrid input", vector.ErrInvalidInput)
		}
		modeArg = buildHybridArg(q.keyword, q.input, req.Alpha)
	default:
		return "", fmt.Errorf("%w: unknown query type %T", vector.ErrInvalidInput, req.Query)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	args := []string{modeArg, "limit: " + strconv.Itoa(limit)}

	if !req.Filters.IsEmpty() {
		where, err := buildWhereArg(req.Filters)
		if err != nil {
			return "", err
		}
		args = append(args, where)
	}

	selection := "_additional { id score distance certainty }"
	if len(req.Fields) > 0 {
		selection = strings.Join(req.Fields, " ") + " " + selection
	}

	return fmt.Sprintf("{ Get { %s(%s) { %s } } }",
		req.Collection, strings.Join(args, ", "), selection), nil
}

// ── Where filters ────────────────────────────────────────────────────────────

func buildWhereArg(fs *filters.FilterSet) (string, error) {
	var operands []string

	if fs.Must != nil {
		for _, c := range fs.Must.Conditions {
			op, err := buildCondition(c)
			if err != nil {
				return "", err
			}
			operands = append(operands, op)
		}
	}
	if fs.Should != nil && len(fs.Should.Conditions) > 0 {
		shouldOps := make([]string, 0, len(fs.Should.Conditions))
		for _, c := range fs.Should.Conditions {
			op, err := buildCondition(c)
			if err != nil {
				return "", err
			}
			shouldOps = append(shouldOps, op)
		}
		if len(shouldOps) == 1 {
			operands = append(operands, shouldOps[0])
		} else {
			operands = append(operands, "{operator: Or, operands: ["+strings.Join(shouldOps, ", ")+"]}")
		}
	}

	switch len(operands) {
	case 0:
		return "", fmt.Errorf("%w: empty filter set", vector.ErrInvalidInput)
	case 1:
		return "where: " + operands[0], nil
	default:
		return "where: {operator: And, operands: [" + strings.Join(operands, ", ") + "]}", nil
	}
}

func buildCondition(c filters.Condition) (string, error) {
	switch cond := c.(type) {
	case *filters.MatchCondition:
		operator := "Equal"
		if cond.Negate {
			operator = "NotEqual"
		}
		value, err := gqlFilterValue(cond.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("{path: %s, operator: %s, %s}", gqlStrings(cond.Path), operator, value), nil

	case *filters.MatchAnyCondition:
		return buildContains(cond.Path, "ContainsAny", cond.Values)

	case *filters.MatchAllCondition:
		return buildContains(cond.Path, "ContainsAll", cond.Values)

	case *filters.LikeCondition:
		return fmt.Sprintf("{path: %s, operator: Like, valueText: %s}",
			gqlStrings(cond.Path), strconv.Quote(cond.Pattern)), nil

	case *filters.NumericRangeCondition:
		return buildRange(cond.Path, map[string]*float64{
			"GreaterThan":      cond.Range.Gt,
			"GreaterThanEqual": cond.Range.Gte,
			"LessThan":         cond.Range.Lt,
			"LessThanEqual":    cond.Range.Lte,
		}, func(v float64) string { return "valueNumber: " + gqlFloat64(v) })

	case *filters.TimeRangeCondition:
		return buildRange(cond.Path, map[string]*time.Time{
			"GreaterThan":      cond.Range.Gt,
			"GreaterThanEqual": cond.Range.Gte,
			"LessThan":         cond.Range.Lt,
			"LessThanEqual":    cond.Range.Lte,
		}, func(v time.Time) string { return "valueDate: " + strconv.Quote(v.Format(time.RFC3339)) })

	case *filters.IsNullCondition:
		return fmt.Sprintf("{path: %s, operator: IsNull, valueBoolean: %t}",
			gqlStrings(cond.Path), cond.Null), nil

	default:
		return "", fmt.Errorf("%w: unsupported filter condition %T", vector.ErrInvalidInput, c)
	}
}

// rangeOperators fixes the emission order of range bounds.
var rangeOperators = []string{"GreaterThan", "GreaterThanEqual", "LessThan", "LessThanEqual"}

func buildRange[T any](path []string, bounds map[string]*T, format func(T) string) (string, error) {
	var ops []string
	for _, operator := range rangeOperators {
		if v := bounds[operator]; v != nil {
			ops = append(ops, fmt.Sprintf("{path: %s, operator: %s, %s}",
				gqlStrings(path), operator, format(*v)))
		}
	}
	switch len(ops) {
	case 0:
		return "", fmt.Errorf("%w: range condition on %v has no bounds", vector.ErrInvalidInput, path)
	case 1:
		return ops[0], nil
	default:
		return "{operator: And, operands: [" + strings.Join(ops, ", ") + "]}", nil
	}
}

func buildContains(path []string, operator string, values []any) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("%w: %s condition on %v has no values", vector.ErrInvalidInput, operator, path)
	}
	switch values[0].(type) {
	case string:
		ss := make([]string, len(values))
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				return "", fmt.Errorf("%w: mixed value types in %s condition", vector.ErrInvalidInput, operator)
			}
			ss[i] = s
		}
		return fmt.Sprintf("{path: %s, operator: %s, valueText: %s}",
			gqlStrings(path), operator, gqlStrings(ss)), nil
	case int, int64:
		parts := make([]string, len(values))
		for i, v := range values {
			switch n := v.(type) {
			case int:
				parts[i] = strconv.Itoa(n)
			case int64:
				parts[i] = strconv.FormatInt(n, 10)
			default:
				return "", fmt.Errorf("%w: mixed value types in %s condition", vector.ErrInvalidInput, operator)
			}
		}
		return fmt.Sprintf("{path: %s, operator: %s, valueInt: [%s]}",
			gqlStrings(path), operator, strings.Join(parts, ", ")), nil
	default:
		return "", fmt.Errorf("%w: unsupported %s value type %T", vector.ErrInvalidInput, operator, values[0])
	}
}

func gqlFilterValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return "valueText: " + strconv.Quote(val), nil
	case bool:
		return fmt.Sprintf("valueBoolean: %t", val), nil
	case int:
		return "valueInt: " + strconv.Itoa(val), nil
	case int64:
		return "valueInt: " + strconv.FormatInt(val, 10), nil
	case float32:
		return "valueNumber: " + gqlFloat(val), nil
	case float64:
		return "valueNumber: " + gqlFloat64(val), nil
	case time.Time:
		return "valueDate: " + strconv.Quote(val.Format(time.RFC3339)), nil
	default:
		return "", fmt.Errorf("%w: unsupported filter value type %T", vector.ErrInvalidInput, v)
	}
}

// ── Object payloads ──────────────────────────────────────────────────────────

// objectPayload converts an Object into the REST batch representation.
func objectPayload(collection string, o Object) (map[string]any, error) {
	payload := map[string]any{
		"class": collection,
	}
	if o.ID != "" {
		payload["id"] = o.ID
	}
	props := o.Properties
	if props == nil {
		props = map[string]any{}
	}
	payload["properties"] = props

	if !o.Vector.IsZero() {
		if err := o.Vector.Validate(); err != nil {
			return nil, err
		}
		if o.Vector.Kind() == vector.KindMulti {
			return nil, fmt.Errorf("%w: the unnamed vector space only takes single vectors", vector.ErrInvalidInput)
		}
		payload["vector"] = o.Vector.Values()
	}

	if len(o.Vectors) > 0 {
		vectors := make(map[string]any, len(o.Vectors))
		for name, v := range o.Vectors {
			if name == "" {
				return nil, fmt.Errorf("%w: named vector with empty name", vector.ErrInvalidInput)
			}
			if err := v.Validate(); err != nil {
				return nil, err
			}
			if v.Kind() == vector.KindMulti {
				vectors[name] = v.Rows()
			} else {
				vectors[name] = v.Values()
			}
		}
		payload["vectors"] = vectors
	}

	return payload, nil
}
