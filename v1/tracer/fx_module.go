package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Tracer to the container and shuts the provider down on
// application stop. A tracer.Config and *logger.Logger must be available in
// the dependency graph.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and stops the tracer provider on shutdown.
// Invoked by FXModule; not meant to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return t.Shutdown(ctx)
		},
	})
}
