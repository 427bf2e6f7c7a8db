// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package config

// validate checks the merged [StructuredConfig] before it is projected into
// a client view.
//
// Currently a no-op placeholder; the merged form allows every field to be
// absent because defaults are applied in [GetClientConfig].
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote.APIURL == "" || cfg.Remote.GatewayURL == "" || cfg.Remote.RequestTimeout <= 0 {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Workers.RefreshInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	// App.Credential may be empty: the vault then runs local-only and is
	// surfaced as "not synced", not as a configuration error.
	// Storage.Cache.DSN may be empty: the snapshot cache is optional.
	return nil
}
