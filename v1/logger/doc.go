// Package logger provides the structured logging used across the SDK.
//
// It wraps Uber's Zap behind a small, stable surface: leveled methods taking
// a message, an optional error and optional key-value fields, plus
// context-aware variants that attach OpenTelemetry trace and span IDs when
// tracing is enabled.
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "weaviate-client",
//	})
//	log.Info("collection created", nil, map[string]interface{}{
//	    "collection": "Articles",
//	})
//
// # FX Integration
//
// FXModule provides *Logger to the container and registers a shutdown hook
// that flushes buffered entries:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return logger.Config{Level: logger.Info} }),
//	)
//
// All methods are safe for concurrent use.
package logger
