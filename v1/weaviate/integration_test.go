package weaviate

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/weaviate/v1/filters"
	"github.com/Aleph-Alpha/weaviate/v1/search"
	"github.com/Aleph-Alpha/weaviate/v1/vector"
)

// WeaviateContainer represents a Weaviate container for testing
type WeaviateContainer struct {
	testcontainers.Container
	Host string
	Port int
}

// setupWeaviateContainer starts a vectorizer-less Weaviate for testing
func setupWeaviateContainer(ctx context.Context) (*WeaviateContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "cr.weaviate.io/semitechnologies/weaviate:1.27.0",
		Env: map[string]string{
			"AUTHENTICATION_ANONYMOUS_ACCESS_ENABLED": "true",
			"PERSISTENCE_DATA_PATH":                   "/var/lib/weaviate",
			"DEFAULT_VECTORIZER_MODULE":               "none",
			"ENABLE_MODULES":                          "",
			"CLUSTER_HOSTNAME":                        "node1",
		},
		ExposedPorts: []string{"8080/tcp"},
		WaitingFor: wait.ForHTTP("/v1/.well-known/ready").
			WithPort(nat.Port("8080/tcp")).
			WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start weaviate container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}
	mappedPort, err := container.MappedPort(ctx, "8080")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	return &WeaviateContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

func TestWeaviateIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupWeaviateContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Weaviate on %s:%d", containerInstance.Host, containerInstance.Port)

	client, err := NewClient(
		FromEndpoint(containerInstance.Host).WithPort(containerInstance.Port),
		nil, nil, nil,
	)
	require.NoError(t, err)
	defer client.Close()

	const collection = "IntegrationDocs"

	t.Run("EnsureCollection", func(t *testing.T) {
		err := client.EnsureCollection(ctx, CollectionSpec{
			Name: collection,
			Properties: []PropertySpec{
				{Name: "title", DataType: "text"},
				{Name: "rank", DataType: "int"},
			},
		})
		assert.NoError(t, err)

		// Second call must be a no-op.
		err = client.EnsureCollection(ctx, CollectionSpec{Name: collection})
		assert.NoError(t, err)

		got, err := client.GetCollection(ctx, collection)
		assert.NoError(t, err)
		assert.Equal(t, collection, got.Name)
	})

	t.Run("Insert", func(t *testing.T) {
		objects := []Object{
			{
				Properties: map[string]any{"title": "first doc", "rank": 1},
				Vector:     vector.Single[float32](1, 0, 0),
			},
			{
				Properties: map[string]any{"title": "second doc", "rank": 2},
				Vector:     vector.Single[float32](0, 1, 0),
			},
			{
				Properties: map[string]any{"title": "third doc", "rank": 3},
				Vector:     vector.Single[float32](0.9, 0.1, 0),
			},
		}
		err := client.Insert(ctx, collection, objects)
		assert.NoError(t, err)
	})

	t.Run("NearVectorSearch", func(t *testing.T) {
		results, err := client.NearVectorSearch(ctx, collection,
			[]float32{1, 0, 0},
			WithLimit(2),
			WithFields("title"),
		)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "first doc", results[0].Properties["title"])
		assert.NotEmpty(t, results[0].ID)
	})

	t.Run("NearVectorSearchWithDistance", func(t *testing.T) {
		nv, err := search.NearVectorFrom([]float32{1, 0, 0}, search.WithDistance(0.05))
		require.NoError(t, err)
		results, err := client.NearVectorSearch(ctx, collection, nv, WithFields("title"))
		require.NoError(t, err)
		// Only the exact match sits inside the distance bound.
		require.Len(t, results, 1)
		assert.Equal(t, "first doc", results[0].Properties["title"])
	})

	t.Run("SearchWithFilter", func(t *testing.T) {
		fs := filters.NewFilterSet(filters.Must(
			filters.NewNumericRange("rank", filters.NumericRange{Gte: filters.Bound(2)}),
		))
		results, err := client.NearVectorSearch(ctx, collection,
			[]float32{1, 0, 0},
			WithFilters(fs),
			WithFields("title", "rank"),
		)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		for _, r := range results {
			rank, ok := r.Properties["rank"].(float64)
			require.True(t, ok, "rank property missing: %v", r.Properties)
			assert.GreaterOrEqual(t, rank, 2.0)
		}
	})

	t.Run("HybridSearch", func(t *testing.T) {
		results, err := client.HybridSearch(ctx, collection, "second",
			[]float32{0, 1, 0},
			WithAlpha(0.5),
			WithFields("title"),
			WithLimit(3),
		)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "second doc", results[0].Properties["title"])
		assert.Greater(t, results[0].Score, float32(0))
	})

	t.Run("UnknownVectorNameRejectedByServer", func(t *testing.T) {
		_, err := client.NearVectorSearch(ctx, collection,
			map[string][]float32{"no_such_space": {1, 0, 0}})
		assert.Error(t, err)
	})

	t.Run("BatchSearch", func(t *testing.T) {
		nv, err := search.NearVectorFrom([]float32{0, 1, 0})
		require.NoError(t, err)
		results, err := client.Search(ctx,
			SearchRequest{Collection: collection, Query: QueryNearVector(nv), Limit: 1},
			SearchRequest{Collection: collection, Query: QueryNearVector(nv), Limit: 3},
		)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Len(t, results[0], 1)
		assert.Len(t, results[1], 3)
	})

	t.Run("DeleteObject", func(t *testing.T) {
		results, err := client.NearVectorSearch(ctx, collection, []float32{1, 0, 0}, WithLimit(1))
		require.NoError(t, err)
		require.NotEmpty(t, results)

		err = client.DeleteObject(ctx, collection, results[0].ID)
		assert.NoError(t, err)

		err = client.DeleteObject(ctx, collection, results[0].ID)
		assert.True(t, IsNotFound(err), "expected ErrNotFound, got %v", err)
	})

	t.Run("DeleteCollection", func(t *testing.T) {
		err := client.DeleteCollection(ctx, collection)
		assert.NoError(t, err)

		_, err = client.GetCollection(ctx, collection)
		assert.True(t, IsNotFound(err), "expected ErrNotFound, got %v", err)
	})
}

func TestWeaviateWithFXModule(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	containerInstance, err := setupWeaviateContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	var client *Client
	app := fxtest.New(t,
		fx.Provide(
			func() *Config {
				return FromEndpoint(containerInstance.Host).
					WithPort(containerInstance.Port).
					WithTimeout(10 * time.Second)
			},
		),
		FXModule,
		fx.Populate(&client),
	)

	err = app.Start(ctx)
	require.NoError(t, err)
	require.NotNil(t, client)

	assert.NoError(t, client.Ready(ctx))

	err = app.Stop(ctx)
	require.NoError(t, err)
}
