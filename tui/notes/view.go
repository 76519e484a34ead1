package notes

import (
	"fmt"
	"strings"
)

// View renders the window tabs, the focused window's documents and help.
func (m *Model) View() string {
	t := m.app.Theme()
	icons := m.app.Icons()
	var b strings.Builder

	b.WriteString(t.Header.Render("ctnotes"))
	b.WriteString("\n")

	current := m.current()
	var tabs []string
	for i, w := range m.app.Windows().All() {
		label := fmt.Sprintf("%s %d", icons.Window, i+1)
		if current != nil && w.ID() == current.ID() {
			tabs = append(tabs, t.Selected.Render(label))
		} else {
			tabs = append(tabs, t.Muted.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "  "))
	b.WriteString("\n\n")

	switch {
	case current == nil:
		b.WriteString(t.Placeholder.Render("No windows"))
		b.WriteString("\n")
	case len(current.Documents()) == 0:
		b.WriteString(t.Placeholder.Render("Empty window"))
		b.WriteString("\n")
	default:
		active := current.Active()
		for i, doc := range current.Documents() {
			icon := icons.Document
			if doc.Format.Encrypted() {
				icon = icons.DocumentEncrypted
			}
			line := fmt.Sprintf("%s %s", icon, doc.Name())
			if active != nil && doc.Path == active.Path {
				line += " " + t.Accent.Render(icons.Bullet)
			}
			if m.changed[doc.Path] {
				line += " " + t.Warning.Render(icons.Watch)
			}
			prefix := "  "
			if i == m.cursor {
				prefix = icons.Select + " "
				line = t.Highlight.Render(line)
			}
			b.WriteString(prefix + line + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(t.Muted.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
