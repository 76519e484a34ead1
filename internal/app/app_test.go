package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/ctnotes/config"
	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/internal/document"
	"github.com/grovetools/ctnotes/internal/instance"
	"github.com/grovetools/ctnotes/internal/window"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader records load attempts and fails for the configured paths.
type fakeLoader struct {
	loaded []string
	fail   map[string]bool
}

func (f *fakeLoader) Load(_ context.Context, path string) (*document.Document, error) {
	f.loaded = append(f.loaded, path)
	if f.fail[path] {
		return nil, errors.LoadFailed(path, assert.AnError)
	}
	format, _ := document.DetectFormat(path)
	return &document.Document{Path: path, Format: format}, nil
}

type harness struct {
	app     *Application
	loader  *fakeLoader
	errOut  *bytes.Buffer
	hook    *logtest.Hook
	created int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Staging.TempRoot = t.TempDir()

	logger, hook := logtest.NewNullLogger()
	h := &harness{loader: &fakeLoader{fail: map[string]bool{}}, errOut: &bytes.Buffer{}, hook: hook}
	h.app = New(Options{
		Config: cfg,
		Loader: h.loader,
		WindowFactory: func(l window.Loader) *window.Window {
			h.created++
			return window.New(l)
		},
		Logger: logrus.NewEntry(logger),
		ErrOut: h.errOut,
	})
	t.Cleanup(func() { _ = h.app.Shutdown() })
	return h
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestInitializeIsIdempotent(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.app.Initialize())
	staging := h.app.Staging()
	tags := h.app.Tags()
	require.NotNil(t, staging)

	require.NoError(t, h.app.Initialize())
	assert.Same(t, staging, h.app.Staging())
	assert.Same(t, tags, h.app.Tags())
	assert.NotNil(t, h.app.Languages())
	assert.NotNil(t, h.app.Schemes().Default())
	assert.Equal(t, "nerd", h.app.Icons().Name)
	assert.NotNil(t, h.app.Config())
	assert.Nil(t, h.app.DocumentEvents())
}

func TestOnActivateTwiceCreatesTwoEmptyWindows(t *testing.T) {
	h := newHarness(t)

	first, err := h.app.OnActivate()
	require.NoError(t, err)
	second, err := h.app.OnActivate()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, 2, h.app.Windows().Len())
	for _, w := range []*window.Window{first, second} {
		assert.True(t, w.Visible())
		assert.Equal(t, 1, w.PresentCount())
		assert.Empty(t, w.Documents())
	}
}

func TestOnOpenMissingFileStillPresentsNewWindow(t *testing.T) {
	h := newHarness(t)
	missing := filepath.Join(t.TempDir(), "missing.ctb")

	w, err := h.app.OnOpen(context.Background(), []string{missing})
	require.NoError(t, err)

	assert.Equal(t, "!! Missing file "+missing+"\n", h.errOut.String())
	assert.Equal(t, 1, h.created)
	assert.True(t, w.Visible())
	assert.Equal(t, 1, w.PresentCount())
	assert.Empty(t, h.loader.loaded, "missing paths are never loaded")
}

func TestOnOpenReusesFirstWindow(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	a, b := touch(t, dir, "a.ctb"), touch(t, dir, "b.ctb")

	existing, err := h.app.OnActivate()
	require.NoError(t, err)
	h.app.OnActivate()

	w, err := h.app.OnOpen(context.Background(), []string{a, b})
	require.NoError(t, err)

	assert.Same(t, existing, w)
	assert.Equal(t, 2, h.created, "no additional window")
	assert.Equal(t, []string{a, b}, h.loader.loaded)
	assert.Len(t, w.Documents(), 2)
	assert.Equal(t, 2, w.PresentCount(), "presented once by activate and once by open")
}

func TestOnOpenContinuesAfterFailures(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()
	bad := touch(t, dir, "bad.ctb")
	good := touch(t, dir, "good.ctd")
	missing := filepath.Join(dir, "gone.ctb")
	h.loader.fail[bad] = true

	w, err := h.app.OnOpen(context.Background(), []string{bad, missing, good})
	require.NoError(t, err)

	assert.Equal(t, []string{bad, good}, h.loader.loaded)
	assert.Equal(t, UsageMessage+"\n!! Missing file "+missing+"\n", h.errOut.String())
	require.Len(t, w.Documents(), 1)
	assert.Equal(t, good, w.Documents()[0].Path)
	assert.Equal(t, 1, w.PresentCount())
	assert.Equal(t, 1, h.created)
}

func TestDispatch(t *testing.T) {
	h := newHarness(t)
	file := touch(t, t.TempDir(), "notes.ctb")

	w, err := h.app.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, w.Documents())
	assert.Empty(t, h.loader.loaded)

	w2, err := h.app.Dispatch(context.Background(), []string{file})
	require.NoError(t, err)
	assert.Same(t, w, w2)
	assert.Equal(t, []string{file}, h.loader.loaded)
}

func TestHandleRequest(t *testing.T) {
	h := newHarness(t)
	file := touch(t, t.TempDir(), "notes.ctb")
	ctx := context.Background()

	_, err := h.app.HandleRequest(ctx, instance.Request{Kind: instance.KindOpen, Paths: []string{file}})
	require.NoError(t, err)
	_, err = h.app.HandleRequest(ctx, instance.Request{Kind: instance.KindActivate})
	require.NoError(t, err)
	_, err = h.app.HandleRequest(ctx, instance.Request{Kind: instance.KindOpen})
	require.NoError(t, err)

	assert.Equal(t, 3, h.app.Windows().Len())
}

func TestShutdownTearsDownStagingOnce(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize())

	dir, err := h.app.Staging().HiddenDirPath("/docs/secret.ctx")
	require.NoError(t, err)
	assert.DirExists(t, dir)

	require.NoError(t, h.app.Shutdown())
	assert.NoDirExists(t, dir)

	require.NoError(t, os.Mkdir(dir, 0700))
	require.NoError(t, h.app.Shutdown())
	assert.DirExists(t, dir, "second shutdown is a no-op")
	require.NoError(t, os.Remove(dir))
}

func TestShutdownBeforeInitializeStillTearsDownLater(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Shutdown())

	require.NoError(t, h.app.Initialize())
	dir, err := h.app.Staging().HiddenDirPath("/docs/late.ctx")
	require.NoError(t, err)
	assert.DirExists(t, dir)

	require.NoError(t, h.app.Shutdown())
	assert.NoDirExists(t, dir)
}

func TestCloseWindow(t *testing.T) {
	h := newHarness(t)
	w, err := h.app.OnActivate()
	require.NoError(t, err)

	assert.True(t, h.app.CloseWindow(w.ID()))
	assert.False(t, h.app.CloseWindow(w.ID()))
	assert.Equal(t, 0, h.app.Windows().Len())
}

func TestEndToEndEncryptedDocument(t *testing.T) {
	cfg := config.Default()
	cfg.Staging.TempRoot = t.TempDir()
	cfg.Documents.ExtractCommand = []string{"cp", "{src}", "{dst}"}
	cfg.Documents.Watch = true

	errOut := &bytes.Buffer{}
	a := New(Options{Config: cfg, ErrOut: errOut})
	secret := touch(t, t.TempDir(), "secret.ctz")

	w, err := a.OnOpen(context.Background(), []string{secret})
	require.NoError(t, err)
	require.Len(t, w.Documents(), 1, errOut.String())

	staged := w.Documents()[0].StagedPath
	assert.Equal(t, "secret.ctd", filepath.Base(staged))
	assert.FileExists(t, staged)
	assert.NotNil(t, a.DocumentEvents())

	require.NoError(t, a.Shutdown())
	assert.NoFileExists(t, staged)
	assert.NoDirExists(t, filepath.Dir(staged))
}
