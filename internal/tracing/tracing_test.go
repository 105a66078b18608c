package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "file", cfg.Exporter)
	require.Equal(t, 1.0, cfg.SampleRate)
	require.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	ctx, span := provider.Tracer().Start(context.Background(), "noop")
	require.Empty(t, TraceIDFromContext(ctx))
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"})
	require.EqualError(t, err, "file_path required for file exporter")

	_, err = NewProvider(Config{Enabled: true, Exporter: "zipkin"})
	require.EqualError(t, err, "unsupported exporter type: zipkin")
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")
	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "file",
		FilePath:    path,
		SampleRate:  1.0,
		ServiceName: "rexy-test",
	})
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	ctx, span := provider.Tracer().Start(context.Background(), SpanEvaluate)
	require.NotEmpty(t, TraceIDFromContext(ctx))
	span.SetAttributes(attribute.Int(AttrMatchCount, 2))
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var record SpanRecord
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
	require.Equal(t, SpanEvaluate, record.Name)
	require.EqualValues(t, 2, record.Attributes[AttrMatchCount])
}

func TestFileExporter_ClosedAfterShutdown(t *testing.T) {
	exporter, err := NewFileExporter(filepath.Join(t.TempDir(), "t.jsonl"))
	require.NoError(t, err)

	require.NoError(t, exporter.Shutdown(context.Background()))
	require.NoError(t, exporter.Shutdown(context.Background()))

	stub := tracetest.SpanStub{Name: "late", StartTime: time.Now(), EndTime: time.Now()}
	err = exporter.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()})
	require.ErrorIs(t, err, ErrExporterClosed)
}

func TestNewSpanRecord(t *testing.T) {
	start := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := tracetest.SpanStub{
		Name:       SpanResolve,
		StartTime:  start,
		EndTime:    start.Add(1500 * time.Microsecond),
		Status:     sdktrace.Status{Code: codes.Error, Description: "pattern too expensive"},
		Attributes: []attribute.KeyValue{attribute.String(AttrErrorKind, "catastrophic_timeout")},
		Events: []sdktrace.Event{{
			Name: EventBudgetExceeded,
			Time: start,
		}},
	}

	record := NewSpanRecord(stub.Snapshot())
	require.Equal(t, SpanResolve, record.Name)
	require.Equal(t, 1.5, record.DurationMs)
	require.Equal(t, "ERROR", record.Status)
	require.Equal(t, "pattern too expensive", record.StatusMsg)
	require.Equal(t, "catastrophic_timeout", record.Attributes[AttrErrorKind])
	require.Len(t, record.Events, 1)
	require.Empty(t, record.ParentSpanID)
}

func TestRun_RecordsOutcome(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	got, err := Run(context.Background(), tracer, SpanCompile,
		[]attribute.KeyValue{attribute.Int(AttrPatternLength, 3)},
		func(ctx context.Context) (int, error) {
			require.NotEmpty(t, TraceIDFromContext(ctx))
			return 7, nil
		})
	require.NoError(t, err)
	require.Equal(t, 7, got)

	_, err = Run(context.Background(), tracer, SpanCompile, nil,
		func(context.Context) (string, error) { return "", errors.New("bad") })
	require.EqualError(t, err, "bad")

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
	require.Len(t, spans[1].Events(), 1, "error recorded as event")
}
