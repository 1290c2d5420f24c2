package logger

import (
	"context"
	"log"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger with leveled helpers and optional trace-context
// extraction. Most logging should go through the wrapper methods; Zap is
// exposed for the rare case that needs zap-specific functionality.
type Logger struct {
	Zap *zap.Logger

	tracingEnabled bool
}

// NewLoggerClient builds a JSON-encoded zap logger writing to stderr, with
// ISO8601 timestamps, caller information, and the process id and service
// name as initial fields.
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	logLevel := zap.InfoLevel
	switch cfg.Level {
	case Debug:
		logLevel = zap.DebugLevel
	case Info:
		logLevel = zap.InfoLevel
	case Warning:
		logLevel = zap.WarnLevel
	case Error:
		logLevel = zap.ErrorLevel
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(logLevel),
		Encoding:         "json",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := zapCfg.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{Zap: zl, tracingEnabled: cfg.EnableTracing}
}

// NewNopLogger returns a logger that discards everything. Used as the default
// when no logger is injected.
func NewNopLogger() *Logger {
	return &Logger{Zap: zap.NewNop()}
}

// Debug logs at debug level with an optional error and fields.
func (l *Logger) Debug(msg string, err error, fields map[string]interface{}) {
	l.Zap.Debug(msg, l.zapFields(nil, err, fields)...)
}

// Info logs at info level with an optional error and fields.
func (l *Logger) Info(msg string, err error, fields map[string]interface{}) {
	l.Zap.Info(msg, l.zapFields(nil, err, fields)...)
}

// Warn logs at warn level with an optional error and fields.
func (l *Logger) Warn(msg string, err error, fields map[string]interface{}) {
	l.Zap.Warn(msg, l.zapFields(nil, err, fields)...)
}

// Error logs at error level with an optional error and fields.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.Zap.Error(msg, l.zapFields(nil, err, fields)...)
}

// DebugWithContext is Debug plus trace/span IDs from ctx when tracing is
// enabled.
func (l *Logger) DebugWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	l.Zap.Debug(msg, l.zapFields(ctx, err, fields)...)
}

// InfoWithContext is Info plus trace/span IDs from ctx when tracing is
// enabled.
func (l *Logger) InfoWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	l.Zap.Info(msg, l.zapFields(ctx, err, fields)...)
}

// WarnWithContext is Warn plus trace/span IDs from ctx when tracing is
// enabled.
func (l *Logger) WarnWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	l.Zap.Warn(msg, l.zapFields(ctx, err, fields)...)
}

// ErrorWithContext is Error plus trace/span IDs from ctx when tracing is
// enabled.
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	l.Zap.Error(msg, l.zapFields(ctx, err, fields)...)
}

func (l *Logger) zapFields(ctx context.Context, err error, fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields)+3)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	if ctx != nil && l.tracingEnabled {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			out = append(out,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}
	return out
}
