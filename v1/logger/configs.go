package logger

// Level is the minimum severity emitted by the logger.
type Level string

const (
	Debug   Level = "debug"
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum severity emitted. Defaults to Info.
	Level Level `yaml:"level" env:"LOGGER_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME"`

	// EnableTracing attaches trace_id/span_id from the context on the
	// *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" env:"LOGGER_ENABLE_TRACING"`
}
