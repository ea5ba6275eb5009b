package observability

import (
	"context"
	"reflect"
	"testing"

	"github.com/yungbote/experience-marketplace/internal/platform/logger"
)

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.NewNop(), TracingConfig{})
	if err != nil || shutdown == nil {
		t.Fatalf("disabled tracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestInitTracingWithoutExporter(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), logger.NewNop(), TracingConfig{
		Enabled:     true,
		Exporter:    ExporterNone,
		SampleRatio: 1,
	})
	if err != nil {
		t.Fatalf("InitTracing: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitTracingRejectsUnknownExporter(t *testing.T) {
	if _, err := InitTracing(context.Background(), logger.NewNop(), TracingConfig{Enabled: true, Exporter: "jaeger"}); err == nil {
		t.Fatalf("expected error for unknown exporter")
	}
}

func TestParseHeadersAndRatio(t *testing.T) {
	got := ParseHeaders(" api-key = abc , bad, =x, team=core ")
	want := map[string]string{"api-key": "abc", "team": "core"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseHeaders: got %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("empty header string should parse to nil")
	}
	if SampleRatio(-1) != 0 || SampleRatio(3) != 1 || SampleRatio(0.25) != 0.25 {
		t.Fatalf("SampleRatio clamping failed")
	}
}

func TestExporterKind(t *testing.T) {
	if exporterKind(TracingConfig{}) != ExporterStdout {
		t.Fatalf("no endpoint should default to stdout")
	}
	if exporterKind(TracingConfig{Endpoint: "collector:4318"}) != ExporterOTLP {
		t.Fatalf("endpoint should default to otlp")
	}
}
