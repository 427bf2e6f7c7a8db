package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-token storage service API token (opaque credential)
//	-api-url storage service API base URL
//	-gateway-url content gateway base URL
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-cache local snapshot cache DSN (SQLite file path)
//	-refresh-interval background refresh interval (e.g., "5m"; 0 disables)
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var credential string
	var apiURL string
	var gatewayURL string
	var requestTimeout time.Duration
	var cacheDSN string
	var refreshInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&credential, "token", "", "Storage service API token")
	flag.StringVar(&apiURL, "api-url", "", "Storage service API base URL")
	flag.StringVar(&gatewayURL, "gateway-url", "", "Content gateway base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&cacheDSN, "cache", "", "Local snapshot cache DSN")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Background refresh interval (0 disables)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Credential: credential,
		},
		Remote: Remote{
			APIURL:         apiURL,
			GatewayURL:     gatewayURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			Cache: Cache{
				DSN: cacheDSN,
			},
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
