// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Passnode Authors

// Package tui is the terminal front end: an unlock screen that derives the
// session from the master password, and a vault browser with one tab per
// vault kind.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/passnode/passnode/internal/logger"
	"github.com/passnode/passnode/internal/service"
)

// ErrUserQuit reports that the user left the program from the unlock screen.
var ErrUserQuit = errors.New("quit by user")

type TUI struct {
	services *service.ClientServices
	version  string
}

func New(services *service.ClientServices, version string, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, version: version}, nil
}

// UnlockFlow runs the unlock screen and returns the authenticated session.
// The master password never leaves the process: unlocking only derives the
// session secret, the storage service sees the credential alone.
func (t *TUI) UnlockFlow(ctx context.Context, credential string) (*service.Session, error) {
	pages := map[string]tea.Model{
		"unlock": NewUnlockModel(t.services.CryptoService, credential),
	}

	root := NewRootModel(pages, "unlock", t.version)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return nil, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return nil, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return nil, ErrUserQuit
	}
	return result.session, nil
}

// MainLoop runs the vault browser until the user quits or locks the vault.
// It returns lock=true when the user asked to re-lock (back to UnlockFlow).
func (t *TUI) MainLoop(ctx context.Context, sess *service.Session) (lock bool, err error) {
	model := newBrowserModel(ctx, t.services, sess)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(browserModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.lock, nil
}
