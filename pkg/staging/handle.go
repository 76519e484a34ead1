package staging

import (
	"os"
)

// handle is an owned staging resource that knows how to clean itself up.
type handle interface {
	Path() string
	Remove() error
}

// dirHandle owns one hidden directory.
type dirHandle struct {
	path string
}

func (h *dirHandle) Path() string { return h.path }

// Remove deletes the directory if it still exists. Removal is not recursive:
// a directory that still holds unknown content is left in place and reported.
func (h *dirHandle) Remove() error {
	info, err := os.Stat(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}
	return os.Remove(h.path)
}

// fileHandle owns one hidden file path. The file itself is written by the
// extractor, so it may never have been created.
type fileHandle struct {
	path string
}

func (h *fileHandle) Path() string { return h.path }

// Remove deletes the file if a regular file exists at the path.
func (h *fileHandle) Remove() error {
	info, err := os.Stat(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	return os.Remove(h.path)
}
