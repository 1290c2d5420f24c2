package weaviate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Aleph-Alpha/weaviate/v1/search"
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// newTestClient points a client at an httptest server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		t.Fatal(err)
	}

	cfg := FromEndpoint(u.Hostname()).WithPort(port).WithSkipReadyCheck(true)
	client, err := NewClient(cfg, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestNewClient_ReadinessProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/.well-known/ready" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	client, err := NewClient(FromEndpoint(u.Hostname()).WithPort(port), nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}

func TestNewClient_NotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	_, err := NewClient(FromEndpoint(u.Hostname()).WithPort(port), nil, nil, nil)
	if !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(DefaultConfig().WithScheme("ftp"), nil, nil, nil)
	if err == nil {
		t.Error("expected config validation error")
	}
}

func TestClient_BearerAuth(t *testing.T) {
	var gotAuth atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{"classes": []}`))
	}))
	client.cfg.ApiKey = "secret"

	if _, err := client.ListCollections(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := gotAuth.Load(); got != "Bearer secret" {
		t.Errorf("expected bearer header, got %v", got)
	}
}

func TestSearch_SendsQueryAndParsesResults(t *testing.T) {
	var gotQuery atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/graphql" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		gotQuery.Store(payload.Query)

		// Score arrives as a string, the way the hybrid API reports it.
		w.Write([]byte(`{"data": {"Get": {"Documents": [
			{"title": "doc one", "_additional": {"id": "uuid-1", "score": "0.9", "distance": 0.2}},
			{"title": "doc two", "_additional": {"id": "uuid-2", "score": 0.5}}
		]}}}`))
	}))

	results, err := client.NearVectorSearch(context.Background(), "Documents",
		[]float32{1, 2}, WithFields("title"), WithLimit(5))
	if err != nil {
		t.Fatal(err)
	}

	query, _ := gotQuery.Load().(string)
	if !strings.Contains(query, "nearVector: {vector: [1, 2]}") {
		t.Errorf("query missing nearVector argument: %q", query)
	}
	if !strings.Contains(query, "limit: 5") {
		t.Errorf("query missing limit: %q", query)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0]
	if first.ID != "uuid-1" || first.Score != 0.9 {
		t.Errorf("first result not parsed: %+v", first)
	}
	if first.Distance == nil || *first.Distance != 0.2 {
		t.Errorf("distance not parsed: %+v", first.Distance)
	}
	if first.Properties["title"] != "doc one" {
		t.Errorf("properties not parsed: %v", first.Properties)
	}
	if first.Collection != "Documents" {
		t.Errorf("collection not set: %q", first.Collection)
	}
}

func TestSearch_GraphQLErrorMapsToServerValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [{"message": "no such vector \"titel\""}]}`))
	}))

	_, err := client.NearVectorSearch(context.Background(), "Documents", []float32{1})
	if !IsServerValidation(err) {
		t.Errorf("expected ErrServerValidation, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "titel") {
		t.Errorf("server message not preserved: %v", err)
	}
}

func TestSearch_BatchPositionsPreserved(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		// Answer with the id of the collection the query asked for.
		collection := "First"
		if strings.Contains(string(body), "Second") {
			collection = "Second"
		}
		w.Write([]byte(`{"data": {"Get": {"` + collection + `": [
			{"_additional": {"id": "` + collection + `-hit", "score": 1}}
		]}}}`))
	}))

	nv, err := search.NearVectorFrom([]float32{1})
	if err != nil {
		t.Fatal(err)
	}
	results, err := client.Search(context.Background(),
		SearchRequest{Collection: "First", Query: QueryNearVector(nv)},
		SearchRequest{Collection: "Second", Query: QueryNearVector(nv)},
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 result sets, got %d", len(results))
	}
	if results[0][0].ID != "First-hit" || results[1][0].ID != "Second-hit" {
		t.Errorf("result positions scrambled: %v / %v", results[0][0].ID, results[1][0].ID)
	}
}

func TestSearch_InvalidRequestFailsFast(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request reached the server")
	}))

	_, err := client.Search(context.Background(), SearchRequest{Collection: "Documents"})
	if !vector.IsInvalidInput(err) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHybridSearch_QueryText(t *testing.T) {
	var gotQuery atomic.Value
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Query string `json:"query"`
		}
		json.Unmarshal(body, &payload)
		gotQuery.Store(payload.Query)
		w.Write([]byte(`{"data": {"Get": {"Documents": []}}}`))
	}))

	_, err := client.HybridSearch(context.Background(), "Documents", "jeans",
		[]float32{1, 2}, WithAlpha(0.25))
	if err != nil {
		t.Fatal(err)
	}
	query, _ := gotQuery.Load().(string)
	if !strings.Contains(query, `hybrid: {query: "jeans", alpha: 0.25, vector: [1, 2]}`) {
		t.Errorf("hybrid argument not assembled: %q", query)
	}
}

func TestInsert_ChunksByBatchSize(t *testing.T) {
	var batches atomic.Int32
	var lastCount atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/batch/objects" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var payload struct {
			Objects []json.RawMessage `json:"objects"`
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		batches.Add(1)
		lastCount.Store(int32(len(payload.Objects)))
		w.Write([]byte(`[]`))
	}))
	client.cfg.BatchSize = 2

	objects := make([]Object, 5)
	for i := range objects {
		objects[i] = Object{
			Properties: map[string]any{"n": i},
			Vector:     vector.Single[float32](float32(i)),
		}
	}
	if err := client.Insert(context.Background(), "Documents", objects); err != nil {
		t.Fatal(err)
	}
	if got := batches.Load(); got != 3 {
		t.Errorf("expected 3 batches, got %d", got)
	}
	if got := lastCount.Load(); got != 1 {
		t.Errorf("expected trailing batch of 1, got %d", got)
	}
}

func TestInsert_PerObjectErrorSurfaces(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"result": {}},
			{"result": {"errors": {"error": [{"message": "vector lengths don't match"}]}}}
		]`))
	}))

	err := client.Insert(context.Background(), "Documents", []Object{
		{Vector: vector.Single[float32](1)},
		{Vector: vector.Single[float32](1, 2)},
	})
	if !IsServerValidation(err) {
		t.Errorf("expected ErrServerValidation, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "object 1") {
		t.Errorf("failing object index not reported: %v", err)
	}
}

func TestGetCollection_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetCollection(context.Background(), "Missing")
	if !IsNotFound(err) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCollection_AbsentIsNoError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	if err := client.DeleteCollection(context.Background(), "Missing"); err != nil {
		t.Errorf("deleting an absent collection should not fail: %v", err)
	}
}

func TestEnsureCollection_CreatesWhenMissing(t *testing.T) {
	var created atomic.Bool
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/schema":
			var class schemaClass
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &class)
			if class.Class != "Documents" || class.Vectorizer != "none" {
				t.Errorf("unexpected class payload: %+v", class)
			}
			if _, ok := class.VectorConfig["title"]; !ok {
				t.Errorf("named vector config missing: %+v", class.VectorConfig)
			}
			created.Store(true)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	err := client.EnsureCollection(context.Background(), CollectionSpec{
		Name:         "Documents",
		NamedVectors: map[string]string{"title": "none"},
		Properties:   []PropertySpec{{Name: "title", DataType: "text"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !created.Load() {
		t.Error("collection was not created")
	}
}

func TestEnsureCollection_ExistingLeftUntouched(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected %s request", r.Method)
		}
		w.Write([]byte(`{"class": "Documents"}`))
	}))

	err := client.EnsureCollection(context.Background(), CollectionSpec{Name: "Documents"})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDo_ServerValidationStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": [{"message": "class name must start uppercase"}]}`))
	}))

	err := client.do(context.Background(), http.MethodPost, "/v1/schema", map[string]any{}, nil)
	if !IsServerValidation(err) {
		t.Errorf("expected ErrServerValidation, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "uppercase") {
		t.Errorf("server message not preserved: %v", err)
	}
}
