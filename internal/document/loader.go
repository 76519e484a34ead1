package document

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/ctnotes/errors"
	"github.com/sirupsen/logrus"
)

// Document is a document opened in a window.
type Document struct {
	// Path is the absolute visible path.
	Path   string
	Format Format
	// StagedPath is the hidden working copy of an encrypted document.
	StagedPath string
	LoadedAt   time.Time
}

// Name returns the base name shown to the user.
func (d *Document) Name() string {
	return filepath.Base(d.Path)
}

// Stager hands out hidden working locations for visible paths.
type Stager interface {
	HiddenFilePath(visiblePath string) (string, error)
}

// Extractor produces the decrypted working copy dst from the visible document src.
type Extractor interface {
	Extract(ctx context.Context, src, dst string) error
}

// Loader resolves paths into documents.
type Loader struct {
	stager    Stager
	extractor Extractor
	logger    *logrus.Entry
}

// NewLoader creates a Loader. Encrypted documents are staged through stager
// and unpacked with extractor.
func NewLoader(stager Stager, extractor Extractor, logger *logrus.Entry) *Loader {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Loader{stager: stager, extractor: extractor, logger: logger}
}

// Load opens the document at path.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.LoadFailed(path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingFile(path)
		}
		return nil, errors.LoadFailed(path, err)
	}

	format, ok := DetectFormat(abs)
	if !ok {
		return nil, errors.LoadFailed(path, errors.UnsupportedExtension(filepath.Base(abs)))
	}
	if format == FormatSingleFile && info.IsDir() {
		return nil, errors.LoadFailed(path, errors.New(errors.ErrCodeInvalidInput, "expected a file, found a directory"))
	}

	doc := &Document{Path: abs, Format: format, LoadedAt: time.Now()}
	if !format.Encrypted() {
		l.logger.WithField("path", abs).Debug("Loaded document")
		return doc, nil
	}

	staged, err := l.stage(ctx, abs)
	if err != nil {
		return nil, err
	}
	doc.StagedPath = staged
	l.logger.WithFields(logrus.Fields{"path": abs, "staged": staged}).Debug("Loaded encrypted document")
	return doc, nil
}

// stage returns the hidden working copy of abs, extracting it on first use.
func (l *Loader) stage(ctx context.Context, abs string) (string, error) {
	if l.stager == nil {
		return "", errors.LoadFailed(abs, errors.ExtractUnavailable(abs))
	}

	staged, err := l.stager.HiddenFilePath(abs)
	if err != nil {
		return "", errors.LoadFailed(abs, err)
	}
	if _, err := os.Stat(staged); err == nil {
		return staged, nil
	}

	if l.extractor == nil {
		return "", errors.LoadFailed(abs, errors.ExtractUnavailable(abs))
	}
	if err := l.extractor.Extract(ctx, abs, staged); err != nil {
		return "", errors.LoadFailed(abs, err)
	}
	if _, err := os.Stat(staged); err != nil {
		return "", errors.LoadFailed(abs, errors.New(errors.ErrCodeInternal, "extractor produced no output").
			WithDetail("staged", staged))
	}
	return staged, nil
}
