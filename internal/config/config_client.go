package config

import (
	"fmt"
	"time"
)

// Default endpoints and timings applied by [GetClientConfig] when the merged
// configuration leaves them unset.
const (
	DefaultAPIURL         = "https://api.web3.storage"
	DefaultGatewayURL     = "https://w3s.link"
	DefaultRequestTimeout = 15 * time.Second
)

// ClientApp holds application-level settings used by the client runtime.
type ClientApp struct {
	// Credential is the opaque storage service token; empty means local-only.
	Credential string
	// Version is the application version string.
	Version string
}

// ClientRemote holds network settings used by the remote store adapter.
type ClientRemote struct {
	// APIURL is the upload/listing API base URL.
	APIURL string
	// GatewayURL is the content gateway base URL.
	GatewayURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientCache contains local snapshot cache settings.
type ClientCache struct {
	// DSN is the SQLite connection string; empty disables the cache.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Cache holds local snapshot cache settings.
	Cache ClientCache
}

// ClientWorkers contains background job settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the refresh job re-pulls each kind.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Remote contains storage service endpoints and timeouts.
	Remote ClientRemote
	// Storage contains client storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, fills in defaults for unset remote
// settings, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Credential: cfg.App.Credential,
			Version:    cfg.App.Version,
		},
		Remote: ClientRemote{
			APIURL:         cfg.Remote.APIURL,
			GatewayURL:     cfg.Remote.GatewayURL,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			Cache: ClientCache{
				DSN: cfg.Storage.Cache.DSN,
			},
		},
		Workers: ClientWorkers{
			RefreshInterval: cfg.Workers.RefreshInterval,
		},
	}

	clientCfg.applyDefaults()

	if err = clientCfg.validate(); err != nil {
		return nil, fmt.Errorf("error validating client config: %w", err)
	}

	return clientCfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Remote.APIURL == "" {
		cfg.Remote.APIURL = DefaultAPIURL
	}
	if cfg.Remote.GatewayURL == "" {
		cfg.Remote.GatewayURL = DefaultGatewayURL
	}
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = DefaultRequestTimeout
	}
}
