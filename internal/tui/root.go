package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/passnode/passnode/internal/service"
)

// RootModel is a TUI router:
// 1) keeps the active page
// 2) handles the global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
	version string

	quitByUser  bool
	session     *service.Session
	showVersion bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage, version string) RootModel {
	return RootModel{
		pages:   pages,
		current: pages[startPage],
		version: version,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkeys for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "ctrl+v":
			r.showVersion = !r.showVersion
			return r, nil
		case "esc":
			if r.showVersion {
				r.showVersion = false
				return r, nil
			}
		}

		if r.showVersion {
			return r, nil
		}
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		next, exists := r.pages[nav.Page]
		if !exists {
			return r, nil
		}

		r.showVersion = false
		r.current = next

		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	// Finalize the unlock flow.
	if result, ok := msg.(UnlockResult); ok {
		r.session = result.Session
		return r, tea.Quit
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showVersion {
		return renderVersionWindow(r.version)
	}
	if r.current == nil {
		return renderPage("PASSNODE", "", "")
	}
	return r.current.View()
}
