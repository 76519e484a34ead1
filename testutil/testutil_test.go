package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/ctnotes/pkg/process"
	"github.com/stretchr/testify/assert"
)

func TestDeadPIDIsNotAlive(t *testing.T) {
	assert.False(t, process.IsProcessAlive(DeadPID))
}

func TestIsolateHome(t *testing.T) {
	home := IsolateHome(t)
	assert.Equal(t, home, os.Getenv("CTNOTES_HOME"))
	assert.DirExists(t, home)
}

func TestWriteDocumentCreatesParents(t *testing.T) {
	path := WriteDocument(t, t.TempDir(), filepath.Join("a", "b", "notes.ctb"))
	assert.FileExists(t, path)
}

func TestRandomString(t *testing.T) {
	assert.Len(t, RandomString(7), 7)
	assert.NotEqual(t, RandomString(16), RandomString(16))
}
