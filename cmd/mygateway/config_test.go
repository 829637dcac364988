package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullYAML = `
instance:
  id: gw-1
  host: gw1.example.com
  base_url: https://gw.example.com/
  metadata:
    zone: a
  ttl_ms: 60000
  heartbeat_interval_ms: 15000
registry:
  url: http://discoverer:10011
security_service:
  service_id: zosmf
  exchange_path: /auth/info
  realm_field: realm
  primary_token: Primary
  secondary_token: Secondary
  headers:
    X-Custom: "1"
  breaker_threshold: 3
  breaker_timeout_ms: 2000
  request_timeout_ms: 4000
  resolve:
    initial_delay_ms: 0
    period_ms: 500
cache:
  ttl_ms: 30000
token:
  issuer: gw
  ttl_ms: 3600000
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func setBaseEnv(t *testing.T, configPath string) {
	t.Helper()
	t.Setenv(envHTTPPort, "10010")
	t.Setenv(envGRPCPort, "10020")
	t.Setenv(envJWTSecret, "secret")
	t.Setenv(envConfigPath, configPath)
	t.Setenv(envLogLevel, "")
	t.Setenv(envTracingExporter, "")
}

func TestLoadConfig_Full(t *testing.T) {
	setBaseEnv(t, writeConfig(t, fullYAML))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10010, cfg.HTTPPort)
	assert.Equal(t, 10020, cfg.GRPCPort)
	assert.Equal(t, []byte("secret"), cfg.JWTSecret)
	assert.Equal(t, "http://discoverer:10011", cfg.RegistryURL)
	assert.Equal(t, 15*time.Second, cfg.HeartbeatInterval)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "gw", cfg.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.TokenTTL)

	assert.Equal(t, domain.Instance{
		InstanceID: "gw-1",
		App:        domain.GatewayApp,
		Host:       "gw1.example.com",
		Port:       10010,
		Status:     domain.StatusUp,
		Metadata:   map[string]string{"zone": "a", domain.MetadataBaseURL: "https://gw.example.com"},
		TTLMs:      60000,
	}, cfg.Instance)

	assert.Equal(t, service.SecurityServiceConfig{
		ServiceID:        "zosmf",
		ExchangePath:     "/auth/info",
		RealmField:       "realm",
		PrimaryToken:     "Primary",
		SecondaryToken:   "Secondary",
		Headers:          map[string]string{"X-Custom": "1"},
		BreakerThreshold: 3,
		BreakerTimeout:   2 * time.Second,
	}, cfg.Security)
	assert.Equal(t, 4*time.Second, cfg.SecurityRequestTimeout)
	assert.Equal(t, time.Duration(0), cfg.SecurityResolve.InitialDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.SecurityResolve.Period)
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t, writeConfig(t, "registry:\n  url: http://discoverer:10011\ninstance:\n  host: gw1\n"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "gw1:10010", cfg.Instance.InstanceID)
	assert.Equal(t, int(defaultInstanceTTL/time.Millisecond), cfg.Instance.TTLMs)
	assert.Empty(t, cfg.Instance.Metadata)
	assert.Equal(t, service.DefaultHeartbeatInterval, cfg.HeartbeatInterval)
	assert.Equal(t, service.DefaultServiceCacheTTL, cfg.CacheTTL)
	assert.Equal(t, defaultTokenIssuer, cfg.TokenIssuer)
	assert.Equal(t, service.DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, service.DefaultSecurityServiceConfig(""), cfg.Security)
	assert.Equal(t, defaultSecurityRequestTimeout, cfg.SecurityRequestTimeout)
	assert.Equal(t, domain.DefaultRetryPolicy().Normalized(), cfg.SecurityResolve)
}

func TestLoadConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gw.yaml"), []byte("registry:\n  url: http://r\ninstance:\n  host: h\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	setBaseEnv(t, "gw.yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://r", cfg.RegistryURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	valid := writeConfig(t, "registry:\n  url: http://r\n")
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantErr string
	}{
		{
			name:    "http port missing",
			setup:   func(t *testing.T) { t.Setenv(envHTTPPort, "") },
			wantErr: envHTTPPort,
		},
		{
			name:    "grpc port out of range",
			setup:   func(t *testing.T) { t.Setenv(envGRPCPort, "70000") },
			wantErr: envGRPCPort,
		},
		{
			name:    "secret missing",
			setup:   func(t *testing.T) { t.Setenv(envJWTSecret, "") },
			wantErr: envJWTSecret,
		},
		{
			name:    "config path missing",
			setup:   func(t *testing.T) { t.Setenv(envConfigPath, "") },
			wantErr: envConfigPath,
		},
		{
			name:    "config file missing",
			setup:   func(t *testing.T) { t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "absent.yaml")) },
			wantErr: "load config",
		},
		{
			name:    "bad yaml",
			setup:   func(t *testing.T) { t.Setenv(envConfigPath, writeConfig(t, "registry: [")) },
			wantErr: "load config",
		},
		{
			name:    "registry url missing",
			setup:   func(t *testing.T) { t.Setenv(envConfigPath, writeConfig(t, "cache:\n  ttl_ms: 1\n")) },
			wantErr: "registry.url is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t, valid)
			tt.setup(t)
			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
