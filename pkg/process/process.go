package process

import (
	"os"
	"syscall"
)

// IsProcessAlive reports whether a process with the given PID exists.
// It probes with signal 0, which performs the permission and existence checks
// without delivering anything (Unix-like systems).
func IsProcessAlive(pid int) bool {
	if pid <= 0 {
		return false
	}

	// FindProcess never fails on Unix; the signal probe does the real work.
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// EPERM still means the process exists, it just belongs to someone else.
	err = proc.Signal(syscall.Signal(0))
	return err == nil || os.IsPermission(err)
}
