package tui

import (
	"github.com/passnode/passnode/internal/service"
	"github.com/passnode/passnode/models"
)

// NavigateTo switches the root router to another page. An optional Payload
// is delivered to the target page after the switch.
type NavigateTo struct {
	Page    string
	Payload any
}

// UnlockResult finishes the unlock flow.
type UnlockResult struct {
	Session *service.Session
}

type vaultLoadedMsg struct {
	kind    models.Kind
	records []models.Record
	err     error
}

type recordSavedMsg struct {
	kind models.Kind
	err  error
}

type recordRemovedMsg struct {
	kind    models.Kind
	removed int
	err     error
}

type copiedMsg struct {
	field string
	err   error
}

type clearStatusMsg struct{}
