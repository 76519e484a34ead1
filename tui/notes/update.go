package notes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case requestMsg:
		w, err := m.app.HandleRequest(m.ctx, msg.req)
		if err != nil {
			m.status = fmt.Sprintf("request failed: %v", err)
		} else {
			m.windowID = w.ID()
			m.cursor = 0
			m.status = fmt.Sprintf("%s request handled", msg.req.Kind)
		}
		return m, waitForRequest(m.requests)

	case changedMsg:
		m.changed[msg.ev.Path] = true
		if msg.ev.Removed {
			m.status = "removed on disk: " + msg.ev.Path
		} else {
			m.status = "changed on disk: " + msg.ev.Path
		}
		return m, waitForChange(m.docEvents)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.NextWindow):
		windows := m.app.Windows().All()
		for i, w := range windows {
			if w.ID() == m.windowID {
				m.windowID = windows[(i+1)%len(windows)].ID()
				m.cursor = 0
				break
			}
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if w := m.current(); w != nil && m.cursor < len(w.Documents())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.CloseWindow):
		w := m.current()
		if w == nil {
			return m, nil
		}
		m.app.CloseWindow(w.ID())
		if m.app.Windows().Len() == 0 {
			// Closing the last window ends the application.
			return m, tea.Quit
		}
		m.current()
	}
	return m, nil
}
