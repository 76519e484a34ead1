package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/ctnotes/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in an isolated CTNOTES_HOME.
func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestConfigShowDefaults(t *testing.T) {
	testutil.IsolateHome(t)
	out, err := execute(t, context.Background(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "prefix: ctnotes")
}

func TestConfigShowExplicitFile(t *testing.T) {
	testutil.IsolateHome(t)
	path := testutil.WriteConfig(t, t.TempDir(), "ctnotes.toml", "[staging]\nprefix = \"notes\"\n")

	out, err := execute(t, context.Background(), "config", "show", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "prefix: notes")
}

func TestConfigPath(t *testing.T) {
	testutil.IsolateHome(t)
	out, err := execute(t, context.Background(), "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "using defaults")
}

func TestConfigSchema(t *testing.T) {
	testutil.IsolateHome(t)
	out, err := execute(t, context.Background(), "config", "schema")
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Contains(t, out, "staging")
}

func TestPathsFollowHome(t *testing.T) {
	home := testutil.IsolateHome(t)
	out, err := execute(t, context.Background(), "paths")
	require.NoError(t, err)

	var got PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got.ConfigDir, home)
	assert.Contains(t, got.Socket, home)
}

func TestStagingSweep(t *testing.T) {
	testutil.IsolateHome(t)
	root := t.TempDir()
	orphan := filepath.Join(root, fmt.Sprintf("ctnotes-%d-abc", testutil.DeadPID))
	require.NoError(t, os.MkdirAll(filepath.Join(orphan, "nested"), 0755))
	mine := filepath.Join(root, fmt.Sprintf("ctnotes-%d-def", os.Getpid()))
	require.NoError(t, os.Mkdir(mine, 0755))

	cfgPath := testutil.WriteConfig(t, t.TempDir(), "ctnotes.yml", "staging:\n  temp_root: "+root+"\n")

	out, err := execute(t, context.Background(), "staging", "sweep", "-c", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
	assert.NoDirExists(t, orphan)
	assert.DirExists(t, mine)
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	testutil.IsolateHome(t)
	doc := testutil.WriteDocument(t, t.TempDir(), "notes.ctb")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := execute(t, ctx, "--no-tui", "--new-instance", doc, filepath.Join(t.TempDir(), "missing.ctb"))
	assert.NoError(t, err)
}

func TestVersionFlag(t *testing.T) {
	testutil.IsolateHome(t)
	out, err := execute(t, context.Background(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "ctnotes dev")
}
