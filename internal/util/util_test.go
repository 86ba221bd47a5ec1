package util

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerLevels(t *testing.T) {
	require.NoError(t, InitLogger("production", "warn"))
	assert.False(t, GetLogger().Core().Enabled(-1))
	assert.True(t, GetLogger().Core().Enabled(1))

	assert.Error(t, InitLogger("development", "loud"))

	require.NoError(t, InitLogger("test", ""))
	assert.False(t, GetLogger().Core().Enabled(2))
}

func TestInitTracerWithoutExporter(t *testing.T) {
	tp, err := InitTracer(ServiceName, TracingOptions{Environment: "test", SampleRatio: 5})
	require.NoError(t, err)
	defer tp.Shutdown(context.Background())

	_, span := StartSpan(context.Background(), "test.span")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
}
