package syntax

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/ctnotes/tui/theme"
)

// Scheme is a style scheme for highlighted code.
type Scheme struct {
	ID       string
	Keyword  lipgloss.Style
	String   lipgloss.Style
	Comment  lipgloss.Style
	Number   lipgloss.Style
	Function lipgloss.Style
	Type     lipgloss.Style
}

// SchemeManager is the registry of style schemes, one per theme palette.
type SchemeManager struct {
	schemes   map[string]*Scheme
	defaultID string
}

// NewSchemeManager builds a scheme for every registered palette. defaultName
// is resolved like a theme name.
func NewSchemeManager(defaultName string) *SchemeManager {
	sm := &SchemeManager{
		schemes:   make(map[string]*Scheme),
		defaultID: theme.ResolveName(defaultName),
	}
	for _, name := range theme.Names() {
		sm.schemes[name] = newScheme(name, theme.NewThemeWithName(name).Colors)
	}
	return sm
}

func newScheme(id string, c theme.Colors) *Scheme {
	s := lipgloss.NewStyle()
	return &Scheme{
		ID:       id,
		Keyword:  s.Foreground(c.Violet).Bold(true),
		String:   s.Foreground(c.Green),
		Comment:  s.Foreground(c.MutedText).Italic(true),
		Number:   s.Foreground(c.Orange),
		Function: s.Foreground(c.Blue),
		Type:     s.Foreground(c.Cyan),
	}
}

// Scheme returns the scheme with the given id.
func (sm *SchemeManager) Scheme(id string) (*Scheme, bool) {
	scheme, ok := sm.schemes[id]
	return scheme, ok
}

// IDs returns every scheme id, sorted.
func (sm *SchemeManager) IDs() []string {
	return theme.Names()
}

// Default returns the scheme of the configured theme.
func (sm *SchemeManager) Default() *Scheme {
	return sm.schemes[sm.defaultID]
}
