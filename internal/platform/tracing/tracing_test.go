package tracing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/mintyhq/minty-api/internal/config"
	"github.com/mintyhq/minty-api/internal/platform/tracing"
)

func TestSetupNoopWhenDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TracingConfig
	}{
		{name: "disabled", cfg: config.TracingConfig{Endpoint: "http://localhost:4318", ServiceName: "minty-api"}},
		{name: "no endpoint", cfg: config.TracingConfig{Enabled: true, ServiceName: "minty-api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := tracing.Setup(context.Background(), tt.cfg)
			require.NoError(t, err)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			assert.NoError(t, shutdown(ctx))
		})
	}
}

func TestSetupCreatesProviderWhenEnabled(t *testing.T) {
	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})

	// A non-routable address and a zero ratio, so nothing is exported.
	shutdown, err := tracing.Setup(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		ServiceName: "minty-api-test",
		SampleRatio: 0,
	})
	require.NoError(t, err)

	_, span := tracing.Tracer("test").Start(context.Background(), "startup-check")
	assert.True(t, span.SpanContext().IsValid(), "the sdk provider assigns ids")
	assert.False(t, span.IsRecording())
	span.End()

	assert.IsType(t, propagation.TraceContext{}, otel.GetTextMapPropagator())
	assert.NoError(t, shutdown(context.Background()))
}
