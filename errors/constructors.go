package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// StagingAllocFailed reports that no hidden directory could be created for a document.
func StagingAllocFailed(visiblePath string, err error) *Error {
	return Wrap(err, ErrCodeStagingAlloc, fmt.Sprintf("cannot allocate staging directory for %s", visiblePath)).
		WithDetail("path", visiblePath)
}

// StagingClosed reports a lookup against a torn-down staging manager.
func StagingClosed(visiblePath string) *Error {
	return New(ErrCodeStagingClosed, "staging manager already torn down").
		WithDetail("path", visiblePath)
}

// UnsupportedExtension creates an error for a document suffix outside the transform table.
func UnsupportedExtension(basename string) *Error {
	return New(ErrCodeUnsupportedExtension, fmt.Sprintf("unexpected basename %s", basename)).
		WithDetail("basename", basename)
}

// TeardownFailed wraps a failure to remove a staged file or directory.
func TeardownFailed(path string, err error) *Error {
	return Wrap(err, ErrCodeTeardownFailed, fmt.Sprintf("cannot remove %s", path)).
		WithDetail("path", path)
}

// MissingFile creates an error for a document path that does not exist.
func MissingFile(path string) *Error {
	return New(ErrCodeMissingFile, fmt.Sprintf("missing file %s", path)).
		WithDetail("path", path)
}

// LoadFailed wraps a failure to load a document into a window.
func LoadFailed(path string, err error) *Error {
	return Wrap(err, ErrCodeLoadFailed, fmt.Sprintf("cannot load %s", path)).
		WithDetail("path", path)
}

// ExtractUnavailable reports that an encrypted document cannot be staged
// because no extractor is configured.
func ExtractUnavailable(path string) *Error {
	return New(ErrCodeExtractUnavailable, "no extract command configured for encrypted documents").
		WithDetail("path", path)
}

// InstanceRunning creates an error for a second primary instance.
func InstanceRunning(pid int) *Error {
	return New(ErrCodeInstanceRunning, fmt.Sprintf("ctnotes already running with PID %d", pid)).
		WithDetail("pid", pid)
}

// InstanceUnreachable wraps a failure to talk to the primary instance.
func InstanceUnreachable(socketPath string, err error) *Error {
	return Wrap(err, ErrCodeInstanceUnreachable, "primary instance not reachable").
		WithDetail("socket", socketPath)
}
