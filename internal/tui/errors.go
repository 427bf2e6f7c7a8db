// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

package tui

import (
	"errors"

	"github.com/passnode/passnode/internal/adapter"
	"github.com/passnode/passnode/internal/vault"
)

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return "Storage service rejected the API token"
	case errors.Is(err, adapter.ErrRemoteUnavailable):
		return "No network or storage service is unavailable"
	case errors.Is(err, vault.ErrDuplicateKey):
		return "An entry with that name already exists"
	case errors.Is(err, vault.ErrMalformedSnapshot):
		return "Stored data is corrupted and could not be read"
	}

	return err.Error()
}
