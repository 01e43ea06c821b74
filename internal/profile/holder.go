package profile

import "sync"

// Holder is the in-memory home of the current profile. Writes are wholesale
// replacements, never merges; callers pass the union of changed and unchanged
// fields. The version counter lets consumers detect replacement without
// comparing contents.
type Holder struct {
	mu      sync.RWMutex
	current Profile
	version uint64
}

// NewHolder creates an empty holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Read returns a snapshot of the current profile.
func (h *Holder) Read() Profile {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Clone()
}

// Write replaces the profile wholesale.
func (h *Holder) Write(p Profile) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = p.Clone()
	h.version++
}

// Version returns the replacement counter. It increments on every Write.
func (h *Holder) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}
