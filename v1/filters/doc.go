// Package filters provides the metadata where-filter model for Weaviate
// queries.
//
// Filters are built client-side as plain values and serialized into the
// GraphQL `where` argument by the weaviate package. Conditions address object
// properties by path and compare against typed values; clauses group
// conditions with AND/OR logic.
//
// Example:
//
//	// status = "published" AND (tag = "ml" OR tag = "ai")
//	f := filters.NewFilterSet(
//	    filters.Must(
//	        filters.NewMatch("status", "published"),
//	    ),
//	    filters.Should(
//	        filters.NewMatch("tag", "ml"),
//	        filters.NewMatch("tag", "ai"),
//	    ),
//	)
//
// Range filtering uses explicit bound structs:
//
//	lt := 20.0
//	f := filters.NewFilterSet(filters.Must(
//	    filters.NewNumericRange("size", filters.NumericRange{Lt: &lt}),
//	))
//
// The package does not validate property names or value types against the
// collection schema; the server reports those mismatches at query time.
package filters
