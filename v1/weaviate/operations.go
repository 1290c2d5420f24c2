package weaviate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/weaviate/v1/search"
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// ── Schema ───────────────────────────────────────────────────────────────────

type schemaClass struct {
	Class        string                    `json:"class"`
	Description  string                    `json:"description,omitempty"`
	Vectorizer   string                    `json:"vectorizer,omitempty"`
	VectorConfig map[string]map[string]any `json:"vectorConfig,omitempty"`
	Properties   []schemaProperty          `json:"properties,omitempty"`
}

type schemaProperty struct {
	Name     string   `json:"name"`
	DataType []string `json:"dataType"`
}

// EnsureCollection creates the collection when it does not exist yet.
// An existing collection is left untouched, whatever its schema.
func (c *Client) EnsureCollection(ctx context.Context, spec CollectionSpec) error {
	ctx, done := c.startOp(ctx, "ensure_collection")
	var err error
	defer func() { done(err) }()

	if spec.Name == "" {
		err = fmt.Errorf("%w: collection name cannot be empty", vector.ErrInvalidInput)
		return err
	}

	_, getErr := c.GetCollection(ctx, spec.Name)
	if getErr == nil {
		return nil
	}
	if !IsNotFound(getErr) {
		err = getErr
		return err
	}

	vectorizer := spec.Vectorizer
	if vectorizer == "" {
		vectorizer = "none"
	}
	class := schemaClass{
		Class:       spec.Name,
		Description: spec.Description,
		Vectorizer:  vectorizer,
	}
	for _, p := range spec.Properties {
		class.Properties = append(class.Properties, schemaProperty{
			Name:     p.Name,
			DataType: []string{p.DataType},
		})
	}
	if len(spec.NamedVectors) > 0 {
		class.VectorConfig = make(map[string]map[string]any, len(spec.NamedVectors))
		for name, vec := range spec.NamedVectors {
			if vec == "" {
				vec = "none"
			}
			class.VectorConfig[name] = map[string]any{
				"vectorizer":      map[string]any{vec: map[string]any{}},
				"vectorIndexType": "hnsw",
			}
		}
	}

	err = c.do(ctx, http.MethodPost, "/v1/schema", class, nil)
	if err == nil {
		c.log.InfoWithContext(ctx, "collection created", nil, map[string]interface{}{
			"collection": spec.Name,
		})
	}
	return err
}

// GetCollection fetches one collection's metadata. Returns ErrNotFound when
// the collection does not exist.
func (c *Client) GetCollection(ctx context.Context, name string) (Collection, error) {
	ctx, done := c.startOp(ctx, "get_collection")
	var err error
	defer func() { done(err) }()

	var class schemaClass
	if err = c.do(ctx, http.MethodGet, "/v1/schema/"+url.PathEscape(name), nil, &class); err != nil {
		return Collection{}, err
	}
	return collectionFromClass(class), nil
}

// ListCollections fetches metadata for all collections.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	ctx, done := c.startOp(ctx, "list_collections")
	var err error
	defer func() { done(err) }()

	var schema struct {
		Classes []schemaClass `json:"classes"`
	}
	if err = c.do(ctx, http.MethodGet, "/v1/schema", nil, &schema); err != nil {
		return nil, err
	}
	out := make([]Collection, len(schema.Classes))
	for i, class := range schema.Classes {
		out[i] = collectionFromClass(class)
	}
	return out, nil
}

// DeleteCollection drops the collection and all its objects. Deleting an
// absent collection is not an error.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	ctx, done := c.startOp(ctx, "delete_collection")
	var err error
	defer func() { done(err) }()

	err = c.do(ctx, http.MethodDelete, "/v1/schema/"+url.PathEscape(name), nil, nil)
	if IsNotFound(err) {
		err = nil
	}
	return err
}

func collectionFromClass(class schemaClass) Collection {
	col := Collection{
		Name:        class.Class,
		Description: class.Description,
		Vectorizer:  class.Vectorizer,
	}
	for name := range class.VectorConfig {
		col.VectorNames = append(col.VectorNames, name)
	}
	for _, p := range class.Properties {
		col.Properties = append(col.Properties, p.Name)
	}
	return col
}

// ── Objects ──────────────────────────────────────────────────────────────────

// Insert writes objects into the collection through the batch endpoint,
// chunked by the config's BatchSize. The first per-object server error aborts
// the remaining chunks.
func (c *Client) Insert(ctx context.Context, collection string, objects []Object) error {
	ctx, done := c.startOp(ctx, "insert")
	var err error
	defer func() { done(err) }()

	if collection == "" {
		err = fmt.Errorf("%w: collection name cannot be empty", vector.ErrInvalidInput)
		return err
	}

	path := "/v1/batch/objects"
	if c.cfg.ConsistencyLevel != "" {
		path += "?consistency_level=" + url.QueryEscape(c.cfg.ConsistencyLevel)
	}

	for start := 0; start < len(objects); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(objects) {
			end = len(objects)
		}

		payloads := make([]map[string]any, 0, end-start)
		for i, o := range objects[start:end] {
			payload, perr := objectPayload(collection, o)
			if perr != nil {
				err = fmt.Errorf("object %d: %w", start+i, perr)
				return err
			}
			payloads = append(payloads, payload)
		}

		var results []struct {
			Result struct {
				Errors *struct {
					Error []struct {
						Message string `json:"message"`
					} `json:"error"`
				} `json:"errors"`
			} `json:"result"`
		}
		if err = c.do(ctx, http.MethodPost, path, map[string]any{"objects": payloads}, &results); err != nil {
			return err
		}
		for i, r := range results {
			if r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
				err = fmt.Errorf("%w: object %d: %s", ErrServerValidation, start+i, r.Result.Errors.Error[0].Message)
				return err
			}
		}
	}

	c.log.DebugWithContext(ctx, "objects inserted", nil, map[string]interface{}{
		"collection": collection,
		"count":      len(objects),
	})
	return nil
}

// DeleteObject removes one object by UUID. Returns ErrNotFound when the
// object does not exist.
func (c *Client) DeleteObject(ctx context.Context, collection, id string) error {
	ctx, done := c.startOp(ctx, "delete_object")
	var err error
	defer func() { done(err) }()

	path := "/v1/objects/" + url.PathEscape(collection) + "/" + url.PathEscape(id)
	if c.cfg.ConsistencyLevel != "" {
		path += "?consistency_level=" + url.QueryEscape(c.cfg.ConsistencyLevel)
	}
	err = c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// DeleteObjects removes several objects by UUID. The first failure aborts;
// already-deleted objects are skipped silently.
func (c *Client) DeleteObjects(ctx context.Context, collection string, ids ...string) error {
	ctx, done := c.startOp(ctx, "delete_objects")
	var err error
	defer func() { done(err) }()

	for _, id := range ids {
		if derr := c.DeleteObject(ctx, collection, id); derr != nil && !IsNotFound(derr) {
			err = derr
			return err
		}
	}
	return nil
}

// ── Search ───────────────────────────────────────────────────────────────────

// Search executes the given requests, concurrently up to the config's
// MaxConcurrentSearches. Result slot i corresponds to request i. The first
// failing request cancels the rest.
func (c *Client) Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error) {
	ctx, done := c.startOp(ctx, "search")
	var err error
	defer func() { done(err) }()

	results := make([][]SearchResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrentSearches)
	for i, req := range requests {
		g.Go(func() error {
			rs, serr := c.searchOne(gctx, req)
			if serr != nil {
				return fmt.Errorf("request %d: %w", i, serr)
			}
			results[i] = rs
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) searchOne(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	query, err := buildSearchQuery(req, c.cfg.DefaultLimit)
	if err != nil {
		return nil, err
	}
	data, err := c.graphql(ctx, query)
	if err != nil {
		return nil, err
	}
	return parseSearchResults(req.Collection, data)
}

// NearVectorSearch runs one query by embedding. The shape takes anything
// vector.From accepts, plus a search.NearVector for thresholded queries.
func (c *Client) NearVectorSearch(ctx context.Context, collection string, shape any, opts ...RequestOption) ([]SearchResult, error) {
	nv, err := toNearVector(shape)
	if err != nil {
		return nil, err
	}
	return c.searchWith(ctx, collection, QueryNearVector(nv), opts)
}

// NearTextSearch runs one server-vectorized text query. The shape takes a
// string, a string list, or a search.NearText.
func (c *Client) NearTextSearch(ctx context.Context, collection string, shape any, opts ...RequestOption) ([]SearchResult, error) {
	nt, err := search.NearTextFrom(shape)
	if err != nil {
		return nil, err
	}
	return c.searchWith(ctx, collection, QueryNearText(nt), opts)
}

// HybridSearch runs one keyword-plus-vector query. The shape takes anything
// search.HybridFrom accepts.
func (c *Client) HybridSearch(ctx context.Context, collection, keyword string, shape any, opts ...RequestOption) ([]SearchResult, error) {
	h, err := search.HybridFrom(shape)
	if err != nil {
		return nil, err
	}
	return c.searchWith(ctx, collection, QueryHybrid(keyword, h), opts)
}

func (c *Client) searchWith(ctx context.Context, collection string, q Query, opts []RequestOption) ([]SearchResult, error) {
	req := SearchRequest{Collection: collection, Query: q}
	for _, opt := range opts {
		opt(&req)
	}
	results, err := c.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func toNearVector(shape any) (search.NearVector, error) {
	if nv, ok := shape.(search.NearVector); ok {
		if nv.IsZero() {
			return search.NearVector{}, fmt.Errorf("%w: zero near vector", vector.ErrInvalidInput)
		}
		return nv, nil
	}
	return search.NearVectorFrom(shape)
}

// parseSearchResults unpacks the Get document for one collection.
func parseSearchResults(collection string, data map[string]json.RawMessage) ([]SearchResult, error) {
	raw, ok := data["Get"]
	if !ok {
		return nil, fmt.Errorf("%w: response carries no Get document", ErrRequest)
	}
	var get map[string][]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &get); err != nil {
		return nil, fmt.Errorf("%w: decode Get document: %v", ErrRequest, err)
	}

	rows := get[collection]
	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		r := SearchResult{Collection: collection, Properties: map[string]any{}}

		if rawAdd, ok := row["_additional"]; ok {
			var add struct {
				ID        string          `json:"id"`
				Score     json.RawMessage `json:"score"`
				Distance  *float32        `json:"distance"`
				Certainty *float32        `json:"certainty"`
			}
			if err := json.Unmarshal(rawAdd, &add); err != nil {
				return nil, fmt.Errorf("%w: decode _additional: %v", ErrRequest, err)
			}
			r.ID = add.ID
			r.Distance = add.Distance
			r.Certainty = add.Certainty
			if score, err := parseScore(add.Score); err == nil {
				r.Score = score
			}
		}

		for field, value := range row {
			if field == "_additional" {
				continue
			}
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return nil, fmt.Errorf("%w: decode property %q: %v", ErrRequest, field, err)
			}
			r.Properties[field] = v
		}
		results = append(results, r)
	}
	return results, nil
}

// parseScore handles the server returning the hybrid score as a JSON string.
func parseScore(raw json.RawMessage) (float32, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("no score")
	}
	var f float32
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
