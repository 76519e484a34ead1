// Package paths provides XDG-compliant path resolution for ctnotes.
//
// Resolution order:
// 1. CTNOTES_HOME (portable root) → $CTNOTES_HOME/{config,data,state,cache,run}
// 2. XDG env vars → $XDG_*_HOME/ctnotes
// 3. Platform defaults → ~/.config/ctnotes, ~/.local/state/ctnotes, etc.
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "ctnotes"

// homeOverride returns $CTNOTES_HOME/<sub> when the portable root is set.
func homeOverride(sub string) string {
	if home := os.Getenv("CTNOTES_HOME"); home != "" {
		return filepath.Join(home, sub)
	}
	return ""
}

// xdgBase resolves one XDG base directory, falling back to a path under $HOME.
func xdgBase(envVar string, fallback ...string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	parts := append([]string{homeDir}, fallback...)
	return filepath.Join(append(parts, appDirName)...)
}

// ConfigDir returns the ctnotes configuration directory.
// Used for ctnotes.toml / ctnotes.yml.
func ConfigDir() string {
	if dir := homeOverride("config"); dir != "" {
		return dir
	}
	return xdgBase("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the ctnotes state directory.
// Used for the pid file and logs.
func StateDir() string {
	if dir := homeOverride("state"); dir != "" {
		return dir
	}
	return xdgBase("XDG_STATE_HOME", ".local", "state")
}

// CacheDir returns the ctnotes cache directory.
func CacheDir() string {
	if dir := homeOverride("cache"); dir != "" {
		return dir
	}
	return xdgBase("XDG_CACHE_HOME", ".cache")
}

// RuntimeDir returns the directory for the single-instance socket.
// Uses XDG_RUNTIME_DIR when available (Linux), falls back to StateDir (macOS).
func RuntimeDir() string {
	if dir := homeOverride("run"); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	return StateDir()
}

// SocketPath returns the path to the primary instance unix socket.
func SocketPath() string {
	return filepath.Join(RuntimeDir(), "ctnotes.sock")
}

// PidFilePath returns the path to the primary instance PID file.
func PidFilePath() string {
	return filepath.Join(StateDir(), "ctnotes.pid")
}

// LogDir returns the directory for default log files.
func LogDir() string {
	return filepath.Join(StateDir(), "logs")
}

// EnsureDirs creates all ctnotes directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), CacheDir(), RuntimeDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
