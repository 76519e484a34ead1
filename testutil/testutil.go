// Package testutil holds helpers shared by ctnotes tests.
package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DeadPID is a process id that is never alive on test machines.
const DeadPID = 999999999

// IsolateHome points CTNOTES_HOME at a fresh temp dir and clears the
// presentation overrides. It returns the new home.
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("CTNOTES_HOME", home)
	t.Setenv("CTNOTES_THEME", "")
	t.Setenv("CTNOTES_ICONS", "")
	return home
}

// WriteDocument creates dir/name with placeholder content and returns its path.
func WriteDocument(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<?xml version=\"1.0\"?><cherrytree/>"), 0644))
	return path
}

// WriteConfig writes a config file named name into dir.
func WriteConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// RandomString generates a random hex string of the given length.
func RandomString(length int) string {
	buf := make([]byte, length/2+1)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)[:length]
}
