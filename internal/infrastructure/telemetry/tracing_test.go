package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopapi/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global provider.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrsOf(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestStartSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "basket.checkout",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, uint64(42)),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "basket.checkout", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
	assert.Equal(t, int64(42), attrsOf(spans[0])[telemetry.SpanAttrOrderID].AsInt64())
}

func TestStartServiceSpan(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartServiceSpan(context.Background(), "catalog_import", "import")
	span.End()

	require.Len(t, sr.Ended(), 1)
	assert.Equal(t, "catalog_import.import", sr.Ended()[0].Name())
	assert.Equal(t, trace.SpanKindInternal, sr.Ended()[0].SpanKind())
}

func TestSetAttributes(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.SetAttributes(span,
		telemetry.SpanAttrUserID, uint64(7),
		telemetry.SpanAttrItems, 3,
		telemetry.SpanAttrState, "new",
		"ratio", 0.5,
		"open", true,
		42, "non-string key is skipped",
		"dangling",
	)
	span.End()

	attrs := attrsOf(sr.Ended()[0])
	assert.Len(t, attrs, 5)
	assert.Equal(t, int64(7), attrs[telemetry.SpanAttrUserID].AsInt64())
	assert.Equal(t, int64(3), attrs[telemetry.SpanAttrItems].AsInt64())
	assert.Equal(t, "new", attrs[telemetry.SpanAttrState].AsString())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.True(t, attrs["open"].AsBool())
}

func TestRecordError(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.RecordError(span, errors.New("basket not found"))
	span.End()

	got := sr.Ended()[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "basket not found", got.Status().Description)
	require.Len(t, got.Events(), 1)
	assert.Equal(t, "exception", got.Events()[0].Name)

	t.Run("nil error and nil span are ignored", func(t *testing.T) {
		_, span := telemetry.StartSpan(context.Background(), "ok")
		telemetry.RecordError(span, nil)
		telemetry.RecordError(nil, errors.New("x"))
		telemetry.SetOK(span)
		span.End()

		assert.Equal(t, codes.Ok, sr.Ended()[1].Status().Code)
	})
}

func TestAddEvent(t *testing.T) {
	sr := setupTestTracer(t)

	_, span := telemetry.StartSpan(context.Background(), "op")
	telemetry.AddEvent(span, "document_archived", "key", "imports/1/abc.json")
	telemetry.AddEvent(nil, "ignored")
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "document_archived", events[0].Name)
}

func TestGetTraceID(t *testing.T) {
	setupTestTracer(t)

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, parent := telemetry.StartSpan(context.Background(), "parent")
	defer parent.End()
	childCtx, child := telemetry.StartSpan(ctx, "child")
	defer child.End()

	assert.Len(t, telemetry.GetTraceID(ctx), 32)
	assert.Equal(t, telemetry.GetTraceID(ctx), telemetry.GetTraceID(childCtx))
	assert.Equal(t, child, telemetry.SpanFromContext(childCtx))
}
