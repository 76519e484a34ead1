// Package texttags holds the shared table of named rich-text tags.
package texttags

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/tui/theme"
)

// Tag is a named text style.
type Tag struct {
	Name  string
	Style lipgloss.Style
}

// Table is the process-wide set of text tags shared by every window.
type Table struct {
	mu   sync.RWMutex
	tags map[string]Tag
}

// NewTable creates a table holding the built-in tags styled with th.
func NewTable(th *theme.Theme) *Table {
	t := &Table{tags: make(map[string]Tag)}
	for _, tag := range builtinTags(th) {
		t.tags[tag.Name] = tag
	}
	return t
}

// Lookup returns the tag with the given name.
func (t *Table) Lookup(name string) (Tag, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tag, ok := t.tags[name]
	return tag, ok
}

// Add registers a new tag. Names are unique.
func (t *Table) Add(tag Tag) error {
	if tag.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "tag name is empty")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.tags[tag.Name]; exists {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("tag %q already exists", tag.Name)).
			WithDetail("tag", tag.Name)
	}
	t.tags[tag.Name] = tag
	return nil
}

// Names returns all tag names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.tags))
	for name := range t.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render applies the named tag to text; unknown tags leave text unchanged.
func (t *Table) Render(name, text string) string {
	tag, ok := t.Lookup(name)
	if !ok {
		return text
	}
	return tag.Style.Render(text)
}

func builtinTags(th *theme.Theme) []Tag {
	c := th.Colors
	base := lipgloss.NewStyle()
	return []Tag{
		{Name: "bold", Style: base.Bold(true)},
		{Name: "italic", Style: base.Italic(true)},
		{Name: "underline", Style: base.Underline(true)},
		{Name: "strikethrough", Style: base.Strikethrough(true)},
		{Name: "monospace", Style: th.Code},
		{Name: "h1", Style: base.Bold(true).Underline(true).Foreground(c.Violet)},
		{Name: "h2", Style: base.Bold(true).Foreground(c.Blue)},
		{Name: "h3", Style: base.Bold(true).Foreground(c.Cyan)},
		{Name: "link", Style: base.Underline(true).Foreground(c.Blue)},
		{Name: "fg-red", Style: base.Foreground(c.Red)},
		{Name: "fg-green", Style: base.Foreground(c.Green)},
		{Name: "fg-yellow", Style: base.Foreground(c.Yellow)},
		{Name: "fg-orange", Style: base.Foreground(c.Orange)},
		{Name: "fg-violet", Style: base.Foreground(c.Violet)},
	}
}
