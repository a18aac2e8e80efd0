// Package telemetry wires the OpenTelemetry SDK for callers that want
// the transformation passes traced without assembling a provider
// themselves.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "arangordf"

// NewTracerProvider creates a TracerProvider exporting through the given
// exporter. A nil exporter yields a provider that records spans without
// exporting them, which still propagates trace context to the store.
//
// The caller owns the provider lifecycle and should call Shutdown on it
// when done.
func NewTracerProvider(exporter sdktrace.SpanExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// NewTracer creates a tracer from the provider under the library's
// service name.
func NewTracer(tp *sdktrace.TracerProvider) trace.Tracer {
	return tp.Tracer(serviceName)
}

// Install registers the provider globally so components that fall back
// to otel.Tracer pick it up.
func Install(tp *sdktrace.TracerProvider) {
	otel.SetTracerProvider(tp)
}
