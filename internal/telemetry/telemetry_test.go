package telemetry

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/term2048/internal/config"
)

func TestNoopTracerDoesNotRecord(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "session")
	defer span.End()

	if span.IsRecording() {
		t.Error("no-op span should not record")
	}
	if span.SpanContext().IsValid() {
		t.Error("no-op span should have an invalid context")
	}
}

func TestTracerBeforeSetup(t *testing.T) {
	tr := Tracer("tui")
	if tr == nil {
		t.Fatal("Tracer() returned nil")
	}

	ctx, span := tr.Start(context.Background(), "move")
	defer span.End()
	if ctx == nil {
		t.Error("Start() returned a nil context")
	}
}

func TestExporterOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
		want int
	}{
		{"environment only", config.TelemetryConfig{Enabled: true}, 0},
		{"endpoint", config.TelemetryConfig{Endpoint: "collector:4318"}, 1},
		{"plain http endpoint", config.TelemetryConfig{Endpoint: "localhost:4318", Insecure: true}, 2},
	}

	for _, tt := range tests {
		if got := len(exporterOptions(tt.cfg)); got != tt.want {
			t.Errorf("%s: %d options, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{1, "root:AlwaysOnSampler"},
		{2, "root:AlwaysOnSampler"},
		{0.25, "root:TraceIDRatioBased{0.25}"},
		{0, "root:TraceIDRatioBased{0}"},
	}

	for _, tt := range tests {
		desc := sampler(tt.ratio).Description()
		if !strings.HasPrefix(desc, "ParentBased{") || !strings.Contains(desc, tt.want) {
			t.Errorf("sampler(%g) = %s, want parent based with %s", tt.ratio, desc, tt.want)
		}
	}
}

func TestResource(t *testing.T) {
	res, err := newResource(context.Background(), Process{Version: "1.2.3", Command: "serve"})
	if err != nil {
		t.Fatalf("newResource() failed: %v", err)
	}

	want := map[attribute.Key]string{
		"service.name":     "term2048",
		"service.version":  "1.2.3",
		"term2048.command": "serve",
	}
	set := res.Set()
	for k, v := range want {
		got, ok := set.Value(k)
		if !ok || got.AsString() != v {
			t.Errorf("%s = %q, want %q", k, got.AsString(), v)
		}
	}

	res, err = newResource(context.Background(), Process{})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := res.Set().Value("service.version"); v.AsString() != "dev" {
		t.Errorf("service.version = %q, want dev", v.AsString())
	}
	if _, ok := res.Set().Value("term2048.command"); ok {
		t.Error("command attribute should be left out when unset")
	}
}

func TestHostname(t *testing.T) {
	if hostname() == "" {
		t.Error("hostname() should never be empty")
	}
}
