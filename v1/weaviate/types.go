package weaviate

import (
	"github.com/Aleph-Alpha/weaviate/v1/filters"
	"github.com/Aleph-Alpha/weaviate/v1/search"
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// Query is the closed set of search modes a SearchRequest can carry: exactly
// one of near-vector, near-text or hybrid. Construct via QueryNearVector,
// QueryNearText or QueryHybrid.
type Query interface {
	isQuery()
}

type nearVectorQuery struct{ nv search.NearVector }
type nearTextQuery struct{ nt search.NearText }
type hybridQuery struct {
	keyword string
	input   search.Hybrid
}

func (nearVectorQuery) isQuery() {}
func (nearTextQuery) isQuery()   {}
func (hybridQuery) isQuery()     {}

// QueryNearVector searches by caller-supplied embedding.
func QueryNearVector(nv search.NearVector) Query {
	return nearVectorQuery{nv: nv}
}

// QueryNearText searches by server-vectorized concept strings.
func QueryNearText(nt search.NearText) Query {
	return nearTextQuery{nt: nt}
}

// QueryHybrid combines keyword scoring with the given vector input.
func QueryHybrid(keyword string, input search.Hybrid) Query {
	return hybridQuery{keyword: keyword, input: input}
}

// SearchRequest represents a single similarity search query.
// Use with Client.Search for single or batch queries.
type SearchRequest struct {
	// Collection is the target collection to search in.
	Collection string `json:"collection"`

	// Query selects the search mode and carries its input.
	Query Query `json:"-"`

	// Limit is the maximum number of results; zero falls back to the
	// config's DefaultLimit.
	Limit int `json:"limit,omitempty"`

	// Fields are the object properties to return.
	Fields []string `json:"fields,omitempty"`

	// Filters is optional metadata filtering.
	Filters *filters.FilterSet `json:"filters,omitempty"`

	// Alpha balances keyword against vector scoring for hybrid queries,
	// in [0,1]. Nil leaves the server default.
	Alpha *float32 `json:"alpha,omitempty"`
}

// RequestOption mutates a SearchRequest before it is sent. Used by the
// convenience wrappers NearVectorSearch, NearTextSearch and HybridSearch.
type RequestOption func(*SearchRequest)

// WithLimit caps the number of results.
func WithLimit(n int) RequestOption {
	return func(r *SearchRequest) { r.Limit = n }
}

// WithFields selects the object properties to return.
func WithFields(fields ...string) RequestOption {
	return func(r *SearchRequest) { r.Fields = fields }
}

// WithFilters attaches metadata filtering.
func WithFilters(fs *filters.FilterSet) RequestOption {
	return func(r *SearchRequest) { r.Filters = fs }
}

// WithAlpha sets the hybrid keyword/vector balance.
func WithAlpha(a float32) RequestOption {
	return func(r *SearchRequest) { r.Alpha = &a }
}

// SearchResult represents a single search result with its scores.
type SearchResult struct {
	// ID is the object's UUID.
	ID string `json:"id"`

	// Score is the result score (hybrid and keyword queries).
	Score float32 `json:"score"`

	// Distance is the raw vector distance, when the server reports one.
	Distance *float32 `json:"distance,omitempty"`

	// Certainty is the normalized similarity, when the server reports one.
	Certainty *float32 `json:"certainty,omitempty"`

	// Properties contains the requested object properties.
	Properties map[string]any `json:"properties,omitempty"`

	// Collection identifies which collection this result came from.
	Collection string `json:"collection,omitempty"`
}

// PropertySpec declares one property of a collection.
type PropertySpec struct {
	// Name is the property name.
	Name string `json:"name"`

	// DataType is the Weaviate data type, e.g. "text", "int", "number".
	DataType string `json:"dataType"`
}

// CollectionSpec declares a collection for EnsureCollection.
type CollectionSpec struct {
	// Name is the collection (class) name.
	Name string `json:"name"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Vectorizer is the module vectorizing objects, e.g. "none" or
	// "text2vec-contextionary". Defaults to "none".
	Vectorizer string `json:"vectorizer,omitempty"`

	// NamedVectors maps vector-space names to their vectorizer. Empty means
	// the collection uses its single unnamed vector space.
	NamedVectors map[string]string `json:"namedVectors,omitempty"`

	// Properties declares the object properties.
	Properties []PropertySpec `json:"properties,omitempty"`
}

// Collection contains metadata about an existing collection.
type Collection struct {
	// Name is the collection (class) name.
	Name string `json:"name"`

	// Description is the collection description.
	Description string `json:"description,omitempty"`

	// Vectorizer is the collection-level vectorizer module.
	Vectorizer string `json:"vectorizer,omitempty"`

	// VectorNames lists the named vector spaces, if any.
	VectorNames []string `json:"vectorNames,omitempty"`

	// Properties lists the declared property names.
	Properties []string `json:"properties,omitempty"`
}

// Object is one object for insertion.
type Object struct {
	// ID is the object UUID. Empty lets the server assign one.
	ID string `json:"id,omitempty"`

	// Properties is the object payload.
	Properties map[string]any `json:"properties"`

	// Vector is the payload for the collection's unnamed vector space.
	// Zero means the server vectorizes (or the object has no vector).
	Vector vector.Vector `json:"-"`

	// Vectors carries payloads for named vector spaces.
	Vectors map[string]vector.Vector `json:"-"`
}
