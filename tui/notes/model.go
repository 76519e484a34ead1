// Package notes is the terminal front end: it lists the application's
// windows and their documents and applies forwarded launch requests.
package notes

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ctnotes/internal/document"
	"github.com/grovetools/ctnotes/internal/instance"
	"github.com/grovetools/ctnotes/internal/window"
	"github.com/grovetools/ctnotes/tui/theme"
)

// App is the part of the application the TUI drives.
type App interface {
	Windows() *window.Registry
	Icons() theme.Icons
	Theme() *theme.Theme
	HandleRequest(ctx context.Context, req instance.Request) (*window.Window, error)
	CloseWindow(id string) bool
}

// Model represents the state of the notes TUI.
type Model struct {
	ctx       context.Context
	app       App
	keys      KeyMap
	help      help.Model
	requests  <-chan instance.Request
	docEvents <-chan document.Changed

	windowID string
	cursor   int
	changed  map[string]bool
	status   string
	width    int
	height   int
}

// New creates the model. requests and docEvents may be nil.
func New(ctx context.Context, app App, requests <-chan instance.Request, docEvents <-chan document.Changed) *Model {
	m := &Model{
		ctx:       ctx,
		app:       app,
		keys:      DefaultKeyMap,
		help:      help.New(),
		requests:  requests,
		docEvents: docEvents,
		changed:   make(map[string]bool),
	}
	if w, ok := app.Windows().First(); ok {
		m.windowID = w.ID()
	}
	return m
}

// requestMsg carries a request forwarded by another invocation.
type requestMsg struct{ req instance.Request }

// changedMsg carries a document watcher event.
type changedMsg struct{ ev document.Changed }

// Init starts listening for forwarded requests and document changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForRequest(m.requests), waitForChange(m.docEvents))
}

func waitForRequest(ch <-chan instance.Request) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return requestMsg{req: req}
	}
}

func waitForChange(ch <-chan document.Changed) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{ev: ev}
	}
}

// current returns the focused window, falling back to the first one.
func (m *Model) current() *window.Window {
	windows := m.app.Windows().All()
	for _, w := range windows {
		if w.ID() == m.windowID {
			return w
		}
	}
	if len(windows) > 0 {
		m.windowID = windows[0].ID()
		m.cursor = 0
		return windows[0]
	}
	return nil
}
