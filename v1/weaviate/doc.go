// Package weaviate provides a modular, dependency-injected client for the
// Weaviate vector database.
//
// The package wraps Weaviate's REST and GraphQL endpoints behind a small,
// typed API for collection management, batched object insertion and
// similarity search. Search inputs are modeled by the v1/vector and
// v1/search packages, so a query can be built from a bare float slice, a
// named-vector map, a server-vectorized text query or a hybrid
// keyword-plus-vector combination, all through the same client.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Automatic readiness probe on client initialization
//   - Safe, batched insertion of objects with configurable batch size
//   - Concurrent batch search bounded by MaxConcurrentSearches
//   - Near-vector, near-text and hybrid query modes over one Search API
//   - Metadata filtering via the v1/filters package
//   - Optional request rate limiting, tracing and Prometheus metrics
//
// # Basic Usage
//
//	client, err := weaviate.NewClient(weaviate.FromEndpoint("localhost"), nil, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.EnsureCollection(ctx, weaviate.CollectionSpec{
//	    Name: "Documents",
//	    Properties: []weaviate.PropertySpec{
//	        {Name: "title", DataType: "text"},
//	    },
//	})
//
//	err = client.Insert(ctx, "Documents", []weaviate.Object{
//	    {
//	        Properties: map[string]any{"title": "My Document"},
//	        Vector:     vector.Single([]float32{0.12, 0.43, 0.85}),
//	    },
//	})
//
//	results, err := client.NearVectorSearch(ctx, "Documents",
//	    []float32{0.1, 0.4, 0.9},
//	    weaviate.WithLimit(5),
//	    weaviate.WithFields("title"),
//	)
//	for _, r := range results {
//	    fmt.Printf("ID=%s Score=%.4f\n", r.ID, r.Score)
//	}
//
// # Query Modes
//
// Search requests carry exactly one query mode, built through the Query
// factories:
//
//	weaviate.QueryNearVector(nv)        // caller-supplied embedding
//	weaviate.QueryNearText(nt)          // server-vectorized concepts
//	weaviate.QueryHybrid("keyword", h)  // keyword + vector scoring
//
// Multi-target queries with score combination come from the vector package's
// builders:
//
//	in, _ := vector.Average(
//	    vector.NamedSingle("title", titleVec),
//	    vector.NamedSingle("body", bodyVec),
//	)
//	nv, _ := search.NewNearVector(in, search.WithDistance(0.3))
//
// # FX Module Integration
//
// The package exposes an Fx module for automatic dependency injection:
//
//	app := fx.New(
//	    weaviate.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// Client-side validation is structural only: empty names, missing weights and
// unknown shapes fail fast with vector.ErrInvalidInput. Schema-dependent
// rejections, such as unknown vector names or dimension mismatches, come back
// from the server wrapped in ErrServerValidation.
package weaviate
