// Package tracer sets up OpenTelemetry tracing for applications using the
// SDK.
//
// It configures a tracer provider (optionally exporting spans over OTLP/HTTP)
// and offers a small API for span creation, error recording, attributes, and
// W3C trace-context propagation across service boundaries.
//
//	trc, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "search-api",
//	    Environment:  "production",
//	    EnableExport: true,
//	}, log)
//
//	ctx, span := trc.StartSpan(ctx, "weaviate.search")
//	defer span.End()
//
// The weaviate client accepts a *Tracer and creates one span per server
// request when it is configured.
//
// FXModule provides the tracer to an fx container and shuts the provider
// down on application stop.
package tracer
