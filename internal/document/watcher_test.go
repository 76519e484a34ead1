package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, w *Watcher, path string) Changed {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-w.Events():
			require.True(t, ok, "events channel closed")
			if ev.Path == path {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s", path)
		}
	}
}

func TestWatcherReportsWatchedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	watched := writeFile(t, filepath.Join(dir, "notes.ctb"))
	other := filepath.Join(dir, "other.ctb")

	w, err := NewWatcher(nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Add(watched))
	require.NoError(t, w.Add(watched))

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(watched, []byte("changed"), 0644))

	ev := waitForChange(t, w, watched)
	assert.False(t, ev.Removed)

	require.NoError(t, os.Remove(watched))
	for {
		ev = waitForChange(t, w, watched)
		if ev.Removed {
			break
		}
	}
}

func TestWatcherRemoveAndClose(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.ctb"))
	b := writeFile(t, filepath.Join(dir, "b.ctb"))

	w, err := NewWatcher(nil)
	require.NoError(t, err)

	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))
	require.NoError(t, w.Remove(a))
	require.NoError(t, w.Remove(a))
	assert.Equal(t, 1, w.dirs[dir])

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case _, ok := <-w.Events():
		for ok {
			_, ok = <-w.Events()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}
