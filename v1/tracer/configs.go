package tracer

// Config controls tracer construction.
type Config struct {
	// ServiceName identifies this service in exported traces.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// Environment tags spans with the deployment environment.
	Environment string `yaml:"environment" env:"TRACER_ENVIRONMENT"`

	// EnableExport turns on the OTLP/HTTP exporter. The endpoint is taken
	// from the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}
