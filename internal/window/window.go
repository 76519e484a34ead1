// Package window holds the in-memory top-level windows of the application.
package window

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/grovetools/ctnotes/internal/document"
)

// Loader loads a document from a path.
type Loader interface {
	Load(ctx context.Context, path string) (*document.Document, error)
}

// Window is one top-level window. A window shows any number of documents,
// the most recently opened one being active.
type Window struct {
	id     string
	loader Loader

	mu        sync.RWMutex
	documents []*document.Document
	active    int
	visible   bool
	presented int
}

// New creates a hidden, empty window.
func New(loader Loader) *Window {
	return &Window{id: uuid.NewString(), loader: loader, active: -1}
}

// ID returns the window's unique id.
func (w *Window) ID() string { return w.id }

// Open loads path into the window and makes it the active document. A path
// already open in this window is reloaded in place.
func (w *Window) Open(ctx context.Context, path string) (*document.Document, error) {
	doc, err := w.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for i, existing := range w.documents {
		if existing.Path == doc.Path {
			w.documents[i] = doc
			w.active = i
			return doc, nil
		}
	}
	w.documents = append(w.documents, doc)
	w.active = len(w.documents) - 1
	return doc, nil
}

// Present makes the window visible and brings it to the foreground.
func (w *Window) Present() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = true
	w.presented++
}

// Visible reports whether the window has been presented.
func (w *Window) Visible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.visible
}

// PresentCount returns how many times Present was called.
func (w *Window) PresentCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.presented
}

// Documents returns a copy of the open documents in opening order.
func (w *Window) Documents() []*document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]*document.Document(nil), w.documents...)
}

// Active returns the active document, or nil for an empty window.
func (w *Window) Active() *document.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.active < 0 || w.active >= len(w.documents) {
		return nil
	}
	return w.documents[w.active]
}

// HasDocument reports whether path is open in this window.
func (w *Window) HasDocument(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, d := range w.documents {
		if d.Path == path {
			return true
		}
	}
	return false
}
