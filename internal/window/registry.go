package window

import "sync"

// Registry is the ordered set of live windows.
type Registry struct {
	mu      sync.RWMutex
	windows []*Window
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends w.
func (r *Registry) Add(w *Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows = append(r.windows, w)
}

// First returns the oldest live window.
func (r *Registry) First() (*Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.windows) == 0 {
		return nil, false
	}
	return r.windows[0], true
}

// All returns the live windows in creation order.
func (r *Registry) All() []*Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Window(nil), r.windows...)
}

// Remove drops the window with the given id. It reports whether one was found.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, w := range r.windows {
		if w.id == id {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of live windows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.windows)
}
