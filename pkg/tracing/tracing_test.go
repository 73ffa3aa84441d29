package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	t.Run("父子Span共享TraceID", func(t *testing.T) {
		ctx, parent := StartSpan(context.Background(), "UpdateBook")
		childCtx, child := StartSpan(ctx, "SaveImage")

		assert.Equal(t, ExtractTraceID(ctx), ExtractTraceID(childCtx))
		assert.NotEmpty(t, ExtractTraceID(ctx))

		EndSpan(child, nil)
		EndSpan(parent, nil)
	})

	t.Run("错误写入Span状态", func(t *testing.T) {
		_, span := StartSpan(context.Background(), "DeleteBook")
		EndSpan(span, errors.New("storage down"))

		ended := recorder.Ended()
		last := ended[len(ended)-1]
		assert.Equal(t, "DeleteBook", last.Name())
		assert.Equal(t, otelcodes.Error, last.Status().Code)
	})
}

func TestExtractTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
}
