package notes

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/ctnotes/config"
	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/internal/app"
	"github.com/grovetools/ctnotes/internal/document"
	"github.com/grovetools/ctnotes/internal/instance"
	"github.com/grovetools/ctnotes/internal/window"
	"github.com/grovetools/ctnotes/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct{}

func (fakeLoader) Load(_ context.Context, path string) (*document.Document, error) {
	format, ok := document.DetectFormat(path)
	if !ok {
		return nil, errors.UnsupportedExtension(filepath.Base(path))
	}
	return &document.Document{Path: path, Format: format}, nil
}

func newApp(t *testing.T) *app.Application {
	t.Helper()
	cfg := config.Default()
	cfg.Staging.TempRoot = t.TempDir()
	logger, _ := logtest.NewNullLogger()
	a := app.New(app.Options{
		Config:        cfg,
		Loader:        fakeLoader{},
		WindowFactory: window.New,
		Logger:        logrus.NewEntry(logger),
		ErrOut:        &bytes.Buffer{},
	})
	require.NoError(t, a.Initialize())
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func writeDoc(t *testing.T, name string) string {
	return testutil.WriteDocument(t, t.TempDir(), name)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewFocusesFirstWindow(t *testing.T) {
	a := newApp(t)
	first, err := a.OnActivate()
	require.NoError(t, err)
	_, err = a.OnActivate()
	require.NoError(t, err)

	m := New(context.Background(), a, nil, nil)
	assert.Equal(t, first.ID(), m.windowID)
}

func TestNextWindowCycles(t *testing.T) {
	a := newApp(t)
	first, _ := a.OnActivate()
	second, _ := a.OnActivate()

	m := New(context.Background(), a, nil, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, second.ID(), m.windowID)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, first.ID(), m.windowID)
}

func TestCursorStaysInBounds(t *testing.T) {
	a := newApp(t)
	_, err := a.OnOpen(context.Background(), []string{writeDoc(t, "a.ctb"), writeDoc(t, "b.ctd")})
	require.NoError(t, err)

	m := New(context.Background(), a, nil, nil)
	m.Update(keyRunes("k"))
	assert.Equal(t, 0, m.cursor)
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	m.Update(keyRunes("j"))
	assert.Equal(t, 1, m.cursor)
	m.Update(keyRunes("k"))
	assert.Equal(t, 0, m.cursor)
}

func TestCloseWindow(t *testing.T) {
	a := newApp(t)
	_, _ = a.OnActivate()
	second, _ := a.OnActivate()

	m := New(context.Background(), a, nil, nil)
	_, cmd := m.Update(keyRunes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, a.Windows().Len())
	assert.Equal(t, second.ID(), m.windowID)

	_, cmd = m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, a.Windows().Len())
}

func TestQuitKey(t *testing.T) {
	a := newApp(t)
	_, _ = a.OnActivate()

	m := New(context.Background(), a, nil, nil)
	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	a := newApp(t)
	_, _ = a.OnActivate()

	m := New(context.Background(), a, nil, nil)
	assert.False(t, m.help.ShowAll)
	m.Update(keyRunes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "close window")
}

func TestForwardedRequestOpensIntoFirstWindow(t *testing.T) {
	a := newApp(t)
	first, _ := a.OnActivate()

	requests := make(chan instance.Request, 1)
	m := New(context.Background(), a, requests, nil)

	path := writeDoc(t, "notes.ctb")
	requests <- instance.Request{Kind: instance.KindOpen, Paths: []string{path}}
	msg := waitForRequest(requests)()
	require.IsType(t, requestMsg{}, msg)

	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "listening must be re-armed")
	assert.Equal(t, first.ID(), m.windowID)
	assert.True(t, first.HasDocument(path))
	assert.Equal(t, 1, a.Windows().Len())
	assert.Contains(t, m.View(), "notes.ctb")
}

func TestForwardedActivateFocusesNewWindow(t *testing.T) {
	a := newApp(t)
	_, _ = a.OnActivate()

	m := New(context.Background(), a, nil, nil)
	m.Update(requestMsg{req: instance.Request{Kind: instance.KindActivate}})

	assert.Equal(t, 2, a.Windows().Len())
	all := a.Windows().All()
	assert.Equal(t, all[1].ID(), m.windowID)
}

func TestDocumentChangeMarksDocument(t *testing.T) {
	a := newApp(t)
	path := writeDoc(t, "watched.ctb")
	_, err := a.OnOpen(context.Background(), []string{path})
	require.NoError(t, err)

	m := New(context.Background(), a, nil, nil)
	m.Update(changedMsg{ev: document.Changed{Path: path}})

	assert.True(t, m.changed[path])
	assert.Contains(t, m.View(), "changed on disk")
}

func TestClosedChannelStopsListening(t *testing.T) {
	ch := make(chan document.Changed)
	close(ch)
	assert.Nil(t, waitForChange(ch)())
	assert.Nil(t, waitForChange(nil))
}

func TestViewWithoutWindows(t *testing.T) {
	a := newApp(t)
	m := New(context.Background(), a, nil, nil)
	assert.Contains(t, m.View(), "No windows")
}
