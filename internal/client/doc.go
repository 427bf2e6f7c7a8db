// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

// Package client implements the interactive client application runtime.
//
// It wires terminal UI flows, per-kind vault services, and the background
// refresh job into a single process lifecycle.
package client
