// Package staging maps visible document paths to hidden, process-private
// working locations and removes them again when the process shuts down.
package staging

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/ctnotes/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPrefix is the leading part of every hidden directory name.
const DefaultPrefix = "ctnotes"

// Options configures a Manager.
type Options struct {
	// TempRoot is the parent of all hidden directories. Empty means os.TempDir().
	TempRoot string
	// Prefix names hidden directories "<prefix>-<pid>-<random>".
	Prefix string
	// Lenient reproduces the legacy behavior for unrecognized suffixes: the
	// unmodified basename is used and only a warning is logged.
	Lenient bool
	Logger  *logrus.Entry
}

// Entry describes one staged visible path.
type Entry struct {
	VisiblePath string `json:"visible_path"`
	HiddenDir   string `json:"hidden_dir"`
	HiddenFile  string `json:"hidden_file,omitempty"`
}

// Manager is the hidden staging registry. Entries are write-once: after the
// first lookup for a visible path the same hidden locations are returned for
// the rest of the process lifetime. A Manager is safe for concurrent use.
type Manager struct {
	opts   Options
	logger *logrus.Entry

	mu        sync.RWMutex
	dirs      map[string]*dirHandle
	files     map[string]*fileHandle
	order     []string
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

// NewManager creates an empty staging registry.
func NewManager(opts Options) *Manager {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = logrus.NewEntry(l)
	}
	return &Manager{
		opts:   opts,
		logger: logger.WithField("subsystem", "staging"),
		dirs:   make(map[string]*dirHandle),
		files:  make(map[string]*fileHandle),
	}
}

// Root returns the directory hidden directories are allocated in.
func (m *Manager) Root() string {
	if m.opts.TempRoot != "" {
		return m.opts.TempRoot
	}
	return os.TempDir()
}

// Prefix returns the configured directory name prefix.
func (m *Manager) Prefix() string {
	return m.opts.Prefix
}

// HiddenDirPath returns the hidden directory for visiblePath, allocating a
// fresh temporary directory on first use. An allocation failure records
// nothing, so a later call retries.
func (m *Manager) HiddenDirPath(visiblePath string) (string, error) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return "", errors.StagingClosed(visiblePath)
	}
	if h, ok := m.dirs[visiblePath]; ok {
		m.mu.RUnlock()
		return h.path, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", errors.StagingClosed(visiblePath)
	}
	h, err := m.dirLocked(visiblePath)
	if err != nil {
		return "", err
	}
	return h.path, nil
}

// HiddenFilePath returns the hidden file path for visiblePath: the hidden
// directory joined with the transformed basename (.ctx -> .ctb, .ctz -> .ctd).
func (m *Manager) HiddenFilePath(visiblePath string) (string, error) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return "", errors.StagingClosed(visiblePath)
	}
	if h, ok := m.files[visiblePath]; ok {
		m.mu.RUnlock()
		return h.path, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", errors.StagingClosed(visiblePath)
	}
	if h, ok := m.files[visiblePath]; ok {
		return h.path, nil
	}

	dir, err := m.dirLocked(visiblePath)
	if err != nil {
		return "", err
	}

	base := filepath.Base(visiblePath)
	name, ok := HiddenBasename(base)
	if !ok {
		m.logger.WithField("basename", base).Warn("unexpected basename")
		if !m.opts.Lenient {
			return "", errors.UnsupportedExtension(base).WithDetail("path", visiblePath)
		}
	}

	h := &fileHandle{path: filepath.Join(dir.path, name)}
	m.files[visiblePath] = h
	return h.path, nil
}

// dirLocked returns the existing directory handle or allocates one.
// m.mu must be held for writing.
func (m *Manager) dirLocked(visiblePath string) (*dirHandle, error) {
	if h, ok := m.dirs[visiblePath]; ok {
		return h, nil
	}

	pattern := fmt.Sprintf("%s-%d-*", m.opts.Prefix, os.Getpid())
	path, err := os.MkdirTemp(m.opts.TempRoot, pattern)
	if err != nil {
		m.logger.WithError(err).WithField("path", visiblePath).Error("failed to allocate hidden directory")
		return nil, errors.StagingAllocFailed(visiblePath, err)
	}

	h := &dirHandle{path: path}
	m.dirs[visiblePath] = h
	m.order = append(m.order, visiblePath)
	m.logger.WithFields(logrus.Fields{"path": visiblePath, "hidden_dir": path}).Debug("allocated hidden directory")
	return h, nil
}

// Entries returns a snapshot of every staged path in allocation order.
func (m *Manager) Entries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry, 0, len(m.order))
	for _, visible := range m.order {
		e := Entry{VisiblePath: visible, HiddenDir: m.dirs[visible].path}
		if f, ok := m.files[visible]; ok {
			e.HiddenFile = f.path
		}
		entries = append(entries, e)
	}
	return entries
}

// Close tears down every hidden location exactly once: all hidden files
// first, then all hidden directories. Every failure is logged and the sweep
// always completes; the joined error is returned for reporting only.
// Later calls return the result of the first.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		var files, dirs []handle
		for _, visible := range m.order {
			if f, ok := m.files[visible]; ok {
				files = append(files, f)
			}
			dirs = append(dirs, m.dirs[visible])
		}
		m.mu.Unlock()

		var errs []error
		errs = append(errs, m.removeAll("file", files)...)
		errs = append(errs, m.removeAll("directory", dirs)...)
		m.closeErr = stderrors.Join(errs...)
	})
	return m.closeErr
}

func (m *Manager) removeAll(kind string, handles []handle) []error {
	var errs []error
	for _, h := range handles {
		if err := h.Remove(); err != nil {
			m.logger.WithError(err).WithField("path", h.Path()).Warnf("failed to remove hidden %s", kind)
			errs = append(errs, errors.TeardownFailed(h.Path(), err))
		}
	}
	return errs
}
