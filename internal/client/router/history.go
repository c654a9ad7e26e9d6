package router

import "sync"

// History owns the current location. It is the navigator the HTTP client
// and the auth service redirect through.
type History struct {
	mu      sync.RWMutex
	entries []string
}

func NewHistory(start string) *History {
	return &History{entries: []string{start}}
}

func (h *History) Location() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.entries[len(h.entries)-1]
}

// Redirect replaces the current entry.
func (h *History) Redirect(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = path
}

func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.entries[len(h.entries)-1] == path {
		return
	}
	h.entries = append(h.entries, path)
}

// Back drops the current entry. It reports false at the first entry.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 1 {
		return h.entries[0], false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}
