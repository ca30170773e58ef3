package apm

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/fd1az/oneinch-nodes/internal/logger"
)

func TestConsoleExporterWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	tp, err := NewTraceProvider(ctx, Config{ServiceName: "oneinch-test", Exporter: ConsoleExporter, Writer: &buf}, logger.NewNop())
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "oneinch.swap.quote")
	span.End()

	require.NoError(t, tp.Stop(ctx))
	assert.Contains(t, buf.String(), "oneinch.swap.quote")
	assert.Contains(t, buf.String(), "oneinch-test")
}

func TestNoExporter(t *testing.T) {
	tp, err := NewTraceProvider(context.Background(), Config{Exporter: NoExporter}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, tp.Stop(context.Background()))
}

func TestUnknownExporter(t *testing.T) {
	_, err := NewTraceProvider(context.Background(), Config{Exporter: "jaeger"}, logger.NewNop())
	assert.Error(t, err)

	_, err = NewTraceProvider(context.Background(), Config{Exporter: ZipkinExporter}, logger.NewNop())
	assert.Error(t, err)
}

func TestParseHeaders(t *testing.T) {
	h, err := ParseHeaders("api-key=abc, x-team = ops ,")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"api-key": "abc", "x-team": "ops"}, h)

	h, err = ParseHeaders("")
	require.NoError(t, err)
	assert.Empty(t, h)

	_, err = ParseHeaders("novalue")
	assert.Error(t, err)
}
