package tracing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Enabled:      true,
			Endpoint:     "http://jaeger:4318",
			ServiceName:  "hanadb-exporter",
			Timeout:      5 * time.Second,
			SamplingRate: 0.5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "валидная", mutate: func(*Config) {}},
		{name: "выключен", mutate: func(c *Config) { *c = Config{} }},
		{name: "https endpoint", mutate: func(c *Config) { c.Endpoint = "https://otel.example.com" }},
		{name: "нет endpoint", mutate: func(c *Config) { c.Endpoint = "" }, wantErr: ErrTracingEndpoint},
		{name: "endpoint без схемы", mutate: func(c *Config) { c.Endpoint = "jaeger:4318" }, wantErr: ErrTracingEndpoint},
		{name: "endpoint grpc", mutate: func(c *Config) { c.Endpoint = "grpc://jaeger:4317" }, wantErr: ErrTracingEndpoint},
		{name: "нулевой timeout", mutate: func(c *Config) { c.Timeout = 0 }, wantErr: ErrTracingTimeoutInvalid},
		{name: "sampling > 1", mutate: func(c *Config) { c.SamplingRate = 1.5 }, wantErr: ErrTracingSamplingRateInvalid},
		{name: "sampling < 0", mutate: func(c *Config) { c.SamplingRate = -0.1 }, wantErr: ErrTracingSamplingRateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Target(t *testing.T) {
	tests := []struct {
		endpoint     string
		wantHost     string
		wantInsecure bool
	}{
		{endpoint: "http://jaeger:4318", wantHost: "jaeger:4318", wantInsecure: true},
		{endpoint: "https://otel.example.com/v1/traces", wantHost: "otel.example.com", wantInsecure: false},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			cfg := Config{Endpoint: tt.endpoint}
			host, insecure, err := cfg.target()
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantInsecure, insecure)
		})
	}
}
