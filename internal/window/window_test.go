package window

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grovetools/ctnotes/errors"
	"github.com/grovetools/ctnotes/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	fail map[string]bool
}

func (s *stubLoader) Load(_ context.Context, path string) (*document.Document, error) {
	if s.fail[path] {
		return nil, errors.LoadFailed(path, assert.AnError)
	}
	format, _ := document.DetectFormat(path)
	return &document.Document{Path: filepath.Clean(path), Format: format}, nil
}

func TestWindowOpen(t *testing.T) {
	w := New(&stubLoader{fail: map[string]bool{"/bad.ctb": true}})
	assert.NotEmpty(t, w.ID())
	assert.Nil(t, w.Active())
	assert.False(t, w.Visible())

	_, err := w.Open(context.Background(), "/a.ctb")
	require.NoError(t, err)
	_, err = w.Open(context.Background(), "/b.ctd")
	require.NoError(t, err)
	assert.Equal(t, "/b.ctd", w.Active().Path)

	_, err = w.Open(context.Background(), "/bad.ctb")
	assert.Error(t, err)
	assert.Len(t, w.Documents(), 2)

	_, err = w.Open(context.Background(), "/a.ctb")
	require.NoError(t, err)
	assert.Len(t, w.Documents(), 2, "reopening does not duplicate")
	assert.Equal(t, "/a.ctb", w.Active().Path)
	assert.True(t, w.HasDocument("/b.ctd"))
	assert.False(t, w.HasDocument("/bad.ctb"))
}

func TestWindowPresent(t *testing.T) {
	w := New(&stubLoader{})
	w.Present()
	w.Present()
	assert.True(t, w.Visible())
	assert.Equal(t, 2, w.PresentCount())
}

func TestWindowIDsAreUnique(t *testing.T) {
	assert.NotEqual(t, New(nil).ID(), New(nil).ID())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, ok := r.First()
	assert.False(t, ok)

	a, b, c := New(nil), New(nil), New(nil)
	r.Add(a)
	r.Add(b)
	r.Add(c)
	assert.Equal(t, 3, r.Len())

	first, ok := r.First()
	require.True(t, ok)
	assert.Same(t, a, first)

	assert.True(t, r.Remove(a.ID()))
	assert.False(t, r.Remove(a.ID()))
	first, _ = r.First()
	assert.Same(t, b, first)
	assert.Equal(t, []*Window{b, c}, r.All())
}
