// Package tracing configures the OpenTelemetry tracer provider of the process.
package tracing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// InstrumentationName names the tracer used by application code.
const InstrumentationName = "procurement"

const serviceVersion = "0.1.0"

// Config selects the span exporter. An empty or "none" exporter leaves the global no-op provider in place.
type Config struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	Insecure    bool
	ServiceName string
	Environment string
}

// Provider owns the SDK tracer provider, if one was installed.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup installs a global tracer provider and the W3C propagators.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}

	exporter, err := newExporter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if exporter == nil {
		return &Provider{}, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithHost(),
		sdkresource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("service.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{tp: tp}, nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return errors.Join(p.tp.ForceFlush(ctx), p.tp.Shutdown(ctx))
}

// Tracer returns the application tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

func newExporter(ctx context.Context, cfg Config, logger *zap.Logger) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(cfg.Exporter) {
	case "", "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("tracing endpoint must be set for otlp exporter")
		}
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
		if cfg.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporterCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return otlptracegrpc.New(exporterCtx, opts...)
	case "none":
		return nil, nil
	default:
		logger.Warn("unsupported trace exporter; tracing disabled", zap.String("exporter", cfg.Exporter))
		return nil, nil
	}
}
