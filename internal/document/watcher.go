package document

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Changed reports that a watched document changed on disk.
type Changed struct {
	Path    string
	Removed bool
}

// Watcher reports on-disk changes of loaded documents. It watches parent
// directories so that editors replacing files atomically are still seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	logger  *logrus.Entry
	events  chan Changed

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]int
	done  chan struct{}
	once  sync.Once
}

// NewWatcher starts a watcher goroutine.
func NewWatcher(logger *logrus.Entry) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	w := &Watcher{
		watcher: fw,
		logger:  logger,
		events:  make(chan Changed, 16),
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Events delivers change notifications. The channel is closed by Close.
func (w *Watcher) Events() <-chan Changed {
	return w.events
}

// Add starts watching path. Adding a path twice is a no-op.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[path] {
		return nil
	}
	dir := filepath.Dir(path)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[path] = true
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.files[path] {
		return nil
	}
	delete(w.files, path)
	dir := filepath.Dir(path)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.watcher.Remove(dir)
	}
	return nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isWatched(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			changed := Changed{
				Path:    filepath.Clean(event.Name),
				Removed: event.Op&(fsnotify.Remove|fsnotify.Rename) != 0,
			}
			select {
			case w.events <- changed:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("document watcher error")
		}
	}
}

func (w *Watcher) isWatched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}
