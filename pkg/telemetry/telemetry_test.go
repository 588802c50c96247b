package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledIsNoop(t *testing.T) {
	tel, err := New(context.Background(), NewDefaultConfig())
	require.NoError(t, err)

	assert.Nil(t, tel.LoggerProvider(), "disabled telemetry selects the capture path")
	assert.False(t, tel.IsEnabled())

	health := tel.Health()
	assert.True(t, health.Healthy)
	assert.False(t, health.Degraded)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = ""

	tel, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, tel)
}

func TestNew_EnabledGRPC(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Enabled = true

	// The gRPC exporter connects lazily, so construction succeeds
	// without a live collector.
	tel, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, tel.LoggerProvider())
	assert.True(t, tel.IsEnabled())

	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.False(t, tel.IsEnabled(), "shutdown marks the backend unhealthy")
}

func TestShutdown_NoopWithoutProvider(t *testing.T) {
	tel, err := New(context.Background(), NewDefaultConfig())
	require.NoError(t, err)

	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.ForceFlush(context.Background()))
}

func TestNilReceiverSafety(t *testing.T) {
	var tel *Telemetry

	assert.Nil(t, tel.LoggerProvider())
	assert.False(t, tel.IsEnabled())
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.ForceFlush(context.Background()))

	health := tel.Health()
	assert.False(t, health.Healthy)
	assert.True(t, health.Degraded)
}
