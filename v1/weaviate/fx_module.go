package weaviate

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Client to the container and closes it on application
// stop. A *weaviate.Config must be available in the dependency graph; logger,
// tracer and observer are picked up when present.
//
// Usage:
//
//	app := fx.New(
//	    weaviate.FXModule,
//	    fx.Provide(func() *weaviate.Config {
//	        return weaviate.FromEndpoint("localhost")
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("weaviate",
	fx.Provide(
		NewClientFromParams,
	),
	fx.Invoke(RegisterClientLifecycle),
)

// RegisterClientLifecycle closes the client on shutdown. Invoked by FXModule;
// not meant to be called directly.
func RegisterClientLifecycle(lc fx.Lifecycle, c *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return c.Close()
		},
	})
}
