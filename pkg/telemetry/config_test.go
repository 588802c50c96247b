package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.Enabled, "disabled by default, no collector required")
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.Equal(t, "grpc", cfg.Protocol)
	assert.Equal(t, "logbridge", cfg.ServiceName)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate_DisabledSkipsChecks(t *testing.T) {
	cfg := &Config{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.Endpoint = "" },
			wantErr: "endpoint is required",
		},
		{
			name:    "bad protocol",
			mutate:  func(c *Config) { c.Protocol = "thrift" },
			wantErr: "protocol must be",
		},
		{
			name:    "missing service name",
			mutate:  func(c *Config) { c.ServiceName = "" },
			wantErr: "service_name is required",
		},
		{
			name:    "missing service version",
			mutate:  func(c *Config) { c.ServiceVersion = "" },
			wantErr: "service_version is required",
		},
		{
			name:    "zero export interval",
			mutate:  func(c *Config) { c.Export.Interval = 0 },
			wantErr: "export interval",
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.Shutdown.Timeout = 0 },
			wantErr: "shutdown timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Enabled = true
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
