// Package vector models the vector payloads a Weaviate query can carry.
//
// The package is pure value construction: no I/O, no shared state. Every
// exported type is immutable once constructed, so values can be built and
// serialized concurrently without coordination.
//
// # Core Types
//
//   - [Vector]: a single embedding, either one flat row (single vector) or a
//     matrix of equal-length rows (multi vector, e.g. ColBERT-style token
//     embeddings)
//   - [NamedVector]: a (name, Vector) pair addressing one vector space of a
//     collection
//   - [SearchInput]: the canonical query payload, one or more named vectors
//     plus an optional combination method for multi-target queries
//
// # Construction
//
// SearchInput accepts many caller shapes through [From]:
//
//	in, err := vector.From([]float32{1, 2, 3})                  // name "default"
//	in, err = vector.From(map[string][]float32{"title": {1, 2}}) // one target per key
//	in, err = vector.From(func(b *vector.Builder) (vector.SearchInput, error) {
//	    return b.Sum(
//	        vector.NamedSingle("title", 1, 2),
//	        vector.NamedSingle("description", 3, 4),
//	    )
//	})
//
// Every shape normalizes to the same internal representation; building via
// From and building the equivalent NamedVector list by hand are
// indistinguishable afterwards.
//
// # Combination Methods
//
// When a query targets more than one named vector, the per-target scores are
// merged by a [CombinationMethod]: sum, average, minimum, manual absolute
// weights, or relative weights the server normalizes. Weighted methods
// require a weight on every target; unweighted methods forbid them. Both
// rules are enforced at construction, never deferred to serialization.
//
// # Errors
//
// All structural violations (empty target lists, missing weights, duplicate
// names, malformed matrices) fail fast with an error wrapping
// [ErrInvalidInput]. Anything that needs collection schema knowledge, such
// as unknown vector names or dimension mismatches, is left to the server.
package vector
