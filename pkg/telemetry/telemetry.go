// Package telemetry wires OpenTelemetry tracing for the analyser.
//
// Tracing is off unless Config.Enabled is set, either in the "telemetry"
// section of the config file or through OTEL_ENABLED. When off, the global
// TracerProvider stays the default no-op provider and spans cost nothing.
//
// Environment Variables (applied over the config file by Config.ApplyEnv):
//
//	OTEL_ENABLED                    - Enable/disable tracing
//	OTEL_SERVICE_NAME               - Service name
//	OTEL_SERVICE_VERSION            - Service version
//	OTEL_EXPORTER_OTLP_ENDPOINT     - OTLP collector endpoint
//	OTEL_EXPORTER_OTLP_PROTOCOL     - Protocol: grpc or http/protobuf
//	OTEL_EXPORTER_OTLP_HEADERS      - Headers for authentication (e.g., Authorization=Bearer xxx)
//	OTEL_EXPORTER_OTLP_INSECURE     - Use insecure connection
//	OTEL_TRACES_SAMPLER             - Sampler type
//	OTEL_TRACES_SAMPLER_ARG         - Sampler argument (e.g., ratio)
//	OTEL_RESOURCE_ATTRIBUTES        - Additional resource attributes
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used by the analyser's packages.
const InstrumentationName = "github.com/jvm-dump-analyser"

// ShutdownFunc is a function that shuts down the TracerProvider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error {
	return nil
}

// Init sets up the global TracerProvider from cfg. With a nil or disabled
// config it returns a no-op shutdown function and leaves the global provider
// untouched.
func Init(ctx context.Context, cfg *Config) (ShutdownFunc, error) {
	if cfg == nil || !cfg.Enabled {
		return noopShutdown, nil
	}

	sampler, err := newSampler(cfg)
	if err != nil {
		return noopShutdown, err
	}

	res, err := buildResource(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}

	exporter, err := createExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}

	tp := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithBatcher(exporter),
		trace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Tracer returns the analyser's tracer from the global provider.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(InstrumentationName)
}
