package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesStructuredConfig(t *testing.T) {
	t.Setenv("APP_TOKEN", "eyJhbGciOiJIUzI1NiJ9.token")
	t.Setenv("REMOTE_API_URL", "https://api.example.test")
	t.Setenv("REMOTE_REQUEST_TIMEOUT", "45s")
	t.Setenv("STORAGE_CACHE_DSN", "/tmp/passnode-cache.db")
	t.Setenv("WORKERS_REFRESH_INTERVAL", "2m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.token", cfg.App.Credential)
	assert.Equal(t, "https://api.example.test", cfg.Remote.APIURL)
	assert.Equal(t, 45*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/tmp/passnode-cache.db", cfg.Storage.Cache.DSN)
	assert.Equal(t, 2*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseJSON_PopulatesStructuredConfig(t *testing.T) {
	body := `{
		"app": {"token": "json-token"},
		"remote": {"api_url": "https://api.json.test", "gateway_url": "https://gw.json.test", "request_timeout": "30s"},
		"storage": {"cache": {"dsn": "cache.db"}},
		"workers": {"refresh_interval": "5m"}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "json-token", cfg.App.Credential)
	assert.Equal(t, "https://api.json.test", cfg.Remote.APIURL)
	assert.Equal(t, "https://gw.json.test", cfg.Remote.GatewayURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "cache.db", cfg.Storage.Cache.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Workers.RefreshInterval)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestDuration_UnmarshalVariants(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"1h30m"`)))
	assert.Equal(t, 90*time.Minute, time.Duration(d))

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	assert.Error(t, d.UnmarshalJSON([]byte(`"not a duration"`)))
}

func TestClientConfig_DefaultsAndValidation(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()

	assert.Equal(t, DefaultAPIURL, cfg.Remote.APIURL)
	assert.Equal(t, DefaultGatewayURL, cfg.Remote.GatewayURL)
	assert.Equal(t, DefaultRequestTimeout, cfg.Remote.RequestTimeout)

	// A defaulted config with no credential and no cache is valid:
	// local-only operation is a supported mode, not a misconfiguration.
	assert.NoError(t, cfg.validate())
}

func TestClientConfig_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClientConfig)
		wantErr error
	}{
		{
			name:    "missing api url",
			mutate:  func(c *ClientConfig) { c.Remote.APIURL = "" },
			wantErr: ErrInvalidRemoteConfigs,
		},
		{
			name:    "missing gateway url",
			mutate:  func(c *ClientConfig) { c.Remote.GatewayURL = "" },
			wantErr: ErrInvalidRemoteConfigs,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *ClientConfig) { c.Remote.RequestTimeout = 0 },
			wantErr: ErrInvalidRemoteConfigs,
		},
		{
			name:    "negative refresh interval",
			mutate:  func(c *ClientConfig) { c.Workers.RefreshInterval = -time.Minute },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ClientConfig{}
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
