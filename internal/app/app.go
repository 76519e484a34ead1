// Package app is the process launch coordinator. It owns every process-wide
// service and routes activation and open-with-files events to windows.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/grovetools/ctnotes/command"
	"github.com/grovetools/ctnotes/config"
	"github.com/grovetools/ctnotes/internal/document"
	"github.com/grovetools/ctnotes/internal/instance"
	"github.com/grovetools/ctnotes/internal/window"
	"github.com/grovetools/ctnotes/pkg/staging"
	"github.com/grovetools/ctnotes/pkg/syntax"
	"github.com/grovetools/ctnotes/pkg/texttags"
	"github.com/grovetools/ctnotes/tui/theme"
	"github.com/sirupsen/logrus"
)

// UsageMessage is printed when a document cannot be loaded.
const UsageMessage = "Usage: ctnotes filepath[.ctd|.ctb|.ctx|.ctz]"

// WindowFactory creates a new top-level window.
type WindowFactory func(loader window.Loader) *window.Window

// Options carries the collaborators of an Application. Zero values are
// replaced with production defaults during Initialize.
type Options struct {
	Config        *config.Config
	Loader        window.Loader
	WindowFactory WindowFactory
	Logger        *logrus.Entry
	// ErrOut receives the human-readable diagnostics. Defaults to os.Stderr.
	ErrOut io.Writer
}

// Application is the single top-level application instance.
type Application struct {
	opts   Options
	logger *logrus.Entry
	errOut io.Writer

	mu          sync.Mutex
	initialized bool
	cfg         *config.Config
	theme       *theme.Theme
	icons       theme.Icons
	tags        *texttags.Table
	languages   *syntax.LanguageManager
	schemes     *syntax.SchemeManager
	staging     *staging.Manager
	loader      window.Loader
	watcher     *document.Watcher
	windows     *window.Registry

	shutdown    bool
	shutdownErr error
}

// New creates an Application. Nothing is allocated until Initialize.
func New(opts Options) *Application {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}
	if opts.WindowFactory == nil {
		opts.WindowFactory = window.New
	}
	return &Application{
		opts:    opts,
		logger:  logger,
		errOut:  errOut,
		windows: window.NewRegistry(),
	}
}

// Initialize creates the process-wide services. Calling it again after a
// successful run is a no-op; a failed run may be retried.
func (a *Application) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}

	cfg := a.opts.Config
	if cfg == nil {
		loaded, err := config.LoadDefault()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	languages, err := syntax.NewLanguageManager()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.theme = theme.NewThemeWithName(cfg.TUI.Theme)
	a.icons = theme.LoadIcons(cfg)
	a.tags = texttags.NewTable(a.theme)
	a.languages = languages
	a.schemes = syntax.NewSchemeManager(cfg.TUI.Theme)

	if cfg.Staging.SweepOnStart {
		a.sweepOrphans()
	}
	a.staging = staging.NewManager(staging.Options{
		TempRoot: cfg.Staging.TempRoot,
		Prefix:   cfg.Staging.Prefix,
		Lenient:  !cfg.StrictExtensions(),
		Logger:   a.logger,
	})

	a.loader = a.opts.Loader
	if a.loader == nil {
		extractor := document.NewCommandExtractor(
			cfg.Documents.ExtractCommand,
			cfg.ExtractTimeout(),
			command.NewSafeBuilder(),
			a.logger,
		)
		a.loader = document.NewLoader(a.staging, extractor, a.logger)
	}

	if cfg.Documents.Watch {
		watcher, err := document.NewWatcher(a.logger)
		if err != nil {
			a.logger.WithError(err).Warn("Document watching disabled")
		} else {
			a.watcher = watcher
		}
	}

	a.initialized = true
	a.logger.Debug("Application initialized")
	return nil
}

func (a *Application) sweepOrphans() {
	result, err := staging.Sweep(a.cfg.Staging.TempRoot, a.cfg.Staging.Prefix)
	if err != nil {
		a.logger.WithError(err).Warn("Orphan sweep failed")
		return
	}
	for path, err := range result.Failed {
		a.logger.WithError(err).WithField("path", path).Warn("Failed to remove orphaned staging directory")
	}
	if len(result.Removed) > 0 {
		a.logger.WithField("count", len(result.Removed)).Info("Removed orphaned staging directories")
	}
}

// Shutdown tears the services down exactly once. Calling it before
// Initialize does nothing, so a later Initialize still gets torn down.
// Staging teardown failures are logged; the joined error is returned for
// reporting only.
func (a *Application) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized || a.shutdown {
		return a.shutdownErr
	}
	a.shutdown = true

	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to stop document watcher")
		}
	}
	for _, e := range a.staging.Entries() {
		a.logger.WithFields(logrus.Fields{
			"visible": e.VisiblePath,
			"dir":     e.HiddenDir,
			"file":    e.HiddenFile,
		}).Debug("Tearing down staging entry")
	}
	a.shutdownErr = a.staging.Close()
	a.logger.Debug("Application shut down")
	return a.shutdownErr
}

// OnActivate creates one new, empty window and presents it.
func (a *Application) OnActivate() (*window.Window, error) {
	if err := a.Initialize(); err != nil {
		return nil, err
	}
	w := a.newWindow()
	w.Present()
	return w, nil
}

// OnOpen loads paths, in order, into the first existing window or a single
// new one. Missing paths and load failures are reported and skipped. The
// target window is presented once at the end.
func (a *Application) OnOpen(ctx context.Context, paths []string) (*window.Window, error) {
	if err := a.Initialize(); err != nil {
		return nil, err
	}

	target, ok := a.windows.First()
	if !ok {
		target = a.newWindow()
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(a.errOut, "!! Missing file %s\n", path)
			a.logger.WithField("path", path).Warn("Missing file")
			continue
		}

		doc, err := target.Open(ctx, path)
		if err != nil {
			fmt.Fprintln(a.errOut, UsageMessage)
			a.logger.WithError(err).WithField("path", path).Warn("Failed to load document")
			continue
		}
		a.watch(doc)
	}

	target.Present()
	return target, nil
}

// Dispatch is the process entry contract: no paths activates, anything else opens.
func (a *Application) Dispatch(ctx context.Context, paths []string) (*window.Window, error) {
	if len(paths) == 0 {
		return a.OnActivate()
	}
	return a.OnOpen(ctx, paths)
}

// HandleRequest applies a request forwarded by another invocation.
func (a *Application) HandleRequest(ctx context.Context, req instance.Request) (*window.Window, error) {
	a.logger.WithFields(logrus.Fields{"kind": req.Kind, "paths": req.Paths}).Info("Handling forwarded request")
	if req.Kind == instance.KindActivate {
		return a.OnActivate()
	}
	return a.Dispatch(ctx, req.Paths)
}

// CloseWindow removes a window and stops watching documents no other window shows.
func (a *Application) CloseWindow(id string) bool {
	var closing *window.Window
	for _, w := range a.windows.All() {
		if w.ID() == id {
			closing = w
		}
	}
	if closing == nil || !a.windows.Remove(id) {
		return false
	}
	if a.watcher == nil {
		return true
	}
	for _, doc := range closing.Documents() {
		if !a.isOpenElsewhere(doc.Path) {
			_ = a.watcher.Remove(doc.Path)
		}
	}
	return true
}

func (a *Application) isOpenElsewhere(path string) bool {
	for _, w := range a.windows.All() {
		if w.HasDocument(path) {
			return true
		}
	}
	return false
}

func (a *Application) newWindow() *window.Window {
	w := a.opts.WindowFactory(a.loader)
	a.windows.Add(w)
	a.logger.WithField("window", w.ID()).Debug("Created window")
	return w
}

func (a *Application) watch(doc *document.Document) {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Add(doc.Path); err != nil {
		a.logger.WithError(err).WithField("path", doc.Path).Warn("Cannot watch document")
	}
}

// Config returns the configuration store.
func (a *Application) Config() *config.Config { return a.cfg }

// Theme returns the active theme.
func (a *Application) Theme() *theme.Theme { return a.theme }

// Icons returns the icon set.
func (a *Application) Icons() theme.Icons { return a.icons }

// Tags returns the shared text-tag table.
func (a *Application) Tags() *texttags.Table { return a.tags }

// Languages returns the language registry.
func (a *Application) Languages() *syntax.LanguageManager { return a.languages }

// Schemes returns the style-scheme registry.
func (a *Application) Schemes() *syntax.SchemeManager { return a.schemes }

// Staging returns the hidden staging manager.
func (a *Application) Staging() *staging.Manager { return a.staging }

// Windows returns the window registry.
func (a *Application) Windows() *window.Registry { return a.windows }

// DocumentEvents returns watcher notifications, or nil when watching is off.
func (a *Application) DocumentEvents() <-chan document.Changed {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Events()
}
