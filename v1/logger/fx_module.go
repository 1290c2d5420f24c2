package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Logger to the container and registers the flush hook.
// A logger.Config must be available in the dependency graph.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes buffered log entries on shutdown. Invoked
// by FXModule; not meant to be called directly.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr can fail on some platforms; not actionable here.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
