// Package search models the query-side inputs of a Weaviate similarity
// search: which vector spaces to target, similarity thresholds, server-side
// text vectorization, and the hybrid (keyword + vector) union.
//
// Like [github.com/Aleph-Alpha/weaviate/v1/vector], this package is pure
// value construction: immutable values, synchronous validation, no I/O.
//
// # Types
//
//   - [TargetVectors]: which named vectors to query and how to combine their
//     scores, without carrying payloads. Used where the server vectorizes
//     (near-text) or payloads were established elsewhere.
//   - [NearVector]: a vector payload plus optional certainty/distance
//     thresholds.
//   - [NearText]: concept strings vectorized server-side, plus optional
//     target vectors, thresholds, and moveTo/moveAway concept nudging.
//   - [Hybrid]: the single "vectors" argument of a hybrid search, a closed
//     union holding exactly one of vector search, near-text or near-vector.
//
// # The Hybrid union
//
// Hybrid is a tagged union, not a struct of optional fields. Mixing a
// near-text query and a raw vector payload in one hybrid call is therefore
// impossible by construction; there is no runtime check because there is no
// representable illegal state.
//
//	h, err := search.HybridFrom("banana")                // near-text variant
//	h, err = search.HybridFrom([]float32{1, 2, 3})       // vector-search variant
//	h, err = search.NewHybridBuilder().
//	    NearVector(search.WithCertainty(0.7)).
//	    Sum(vector.NamedSingle("title", 1, 2))           // near-vector variant
//
// # Thresholds
//
// Certainty and distance are alternative, metric-dependent bounds. The server
// accepts only one; this package allows both to be set and surfaces both to
// the wire layer rather than silently dropping either.
//
// # Errors
//
// Construction failures wrap [vector.ErrInvalidInput] and surface at the call
// site, before any network round-trip.
package search
