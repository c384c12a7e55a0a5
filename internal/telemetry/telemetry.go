// Package telemetry provides OpenTelemetry tracing for play sessions.
//
// Every play session is one "session" span; each key that reaches the game
// is a child "move" or "input" span. Spans are exported over OTLP/HTTP.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vovakirdan/term2048/internal/config"
)

const serviceName = "term2048"

// Process describes the running binary for the span resource.
type Process struct {
	Version string // build version, "dev" when unset
	Command string // CLI command: play, menu, serve, ...
}

// Setup installs a global tracer provider exporting to the collector named
// in cfg. Sessions are sampled at cfg.SampleRatio; moves follow their
// session's decision.
//
// Returns a shutdown function that flushes pending spans on exit.
func Setup(ctx context.Context, cfg config.TelemetryConfig, proc Process) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx, exporterOptions(cfg)...)
	if err != nil {
		return nil, err
	}

	res, err := newResource(ctx, proc)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// exporterOptions maps the config onto the OTLP/HTTP exporter. Unset
// fields fall back to the OTEL_EXPORTER_OTLP_* environment.
func exporterOptions(cfg config.TelemetryConfig) []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// newResource builds the resource by hand; merging with resource.Default()
// fails on schema URL conflicts between otel modules.
func newResource(ctx context.Context, proc Process) (*resource.Resource, error) {
	version := proc.Version
	if version == "" {
		version = "dev"
	}

	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
		attribute.String("host.name", hostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
	}
	if proc.Command != "" {
		attrs = append(attrs, attribute.String("term2048.command", proc.Command))
	}

	return resource.New(ctx, resource.WithAttributes(attrs...))
}

// sampler traces a ratio of root spans. A ratio of 1 or more traces all.
func sampler(ratio float64) sdktrace.Sampler {
	root := sdktrace.AlwaysSample()
	if ratio < 1 {
		root = sdktrace.TraceIDRatioBased(ratio)
	}
	return sdktrace.ParentBased(root)
}

// Tracer returns a named tracer for the given component. Before Setup, or
// when it is never called, the global provider hands out no-op tracers.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
