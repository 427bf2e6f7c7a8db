// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the passnode
// client. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the storage credential
	// and the application version.
	App App `envPrefix:"APP_"`

	// Remote holds the endpoints and timeout for the content-addressed
	// storage service snapshots are persisted to.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local snapshot cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Credential is the opaque API token for the storage service. It may be
	// left empty: the vault then operates local-only and is reported as not
	// synced. The first 16 characters of the credential also serve as the
	// key-derivation salt, so rotating it re-keys the vault.
	// Env: APP_TOKEN
	Credential string `env:"TOKEN"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Remote holds the outbound transport settings for the storage service.
type Remote struct {
	// APIURL is the base URL of the upload/listing API
	// (e.g. "https://api.web3.storage").
	// Env: REMOTE_API_URL
	APIURL string `env:"API_URL"`

	// GatewayURL is the base URL of the content gateway used for fetches by
	// content identifier (e.g. "https://w3s.link").
	// Env: REMOTE_GATEWAY_URL
	GatewayURL string `env:"GATEWAY_URL"`

	// RequestTimeout is the maximum duration allowed for one outbound
	// request before it is cancelled (e.g. "30s", "1m").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for local persistence.
type Storage struct {
	// Cache holds the local snapshot cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// Cache holds connection settings for the local snapshot cache database.
type Cache struct {
	// DSN is the SQLite connection string of the cache database file.
	// Empty disables the cache entirely.
	// Env: STORAGE_CACHE_DSN
	DSN string `env:"DSN"`
}

// Workers contains background job settings.
type Workers struct {
	// RefreshInterval defines how often the background refresh job re-pulls
	// each vault kind. Zero disables the job.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig assembles the merged configuration from environment
// variables, command-line flags, and the optional JSON file.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
