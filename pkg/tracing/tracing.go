// Package tracing installs the global OpenTelemetry tracer provider. Spans
// are exported over OTLP/gRPC; without a collector endpoint the global
// provider stays a no-op.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"k8s.io/klog/v2"
)

const DefaultServiceName = "radiolabel"

// Config selects the collector and sampling.
type Config struct {
	// CollectorEndpoint is host:port of an OTLP/gRPC receiver. Empty
	// disables tracing.
	CollectorEndpoint string
	Insecure          bool
	ServiceName       string
	// SampleRate is the fraction of root spans kept, in [0, 1].
	SampleRate float64
}

// ShutdownFunc flushes pending spans and releases the exporter.
type ShutdownFunc func(context.Context) error

// Init builds the exporter and installs the provider. The returned shutdown
// func is never nil.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	logger := klog.FromContext(ctx)
	noop := func(context.Context) error { return nil }
	if cfg.CollectorEndpoint == "" {
		logger.V(2).Info("Tracing disabled, no collector endpoint configured")
		return noop, nil
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return noop, fmt.Errorf("sample rate must be in [0,1], got %v", cfg.SampleRate)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return noop, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	logger.Info("Tracing enabled", "endpoint", cfg.CollectorEndpoint, "service", cfg.ServiceName, "sampleRate", cfg.SampleRate)

	return provider.Shutdown, nil
}
