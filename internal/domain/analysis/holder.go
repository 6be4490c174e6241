package analysis

import "sync"

// Holder is the single mutable slot with the most recent analysis of a
// dashboard session. It is injected into whoever needs it; Set is the only
// way to change it and always swaps the whole value.
type Holder struct {
	mu      sync.RWMutex
	current *Result
}

func NewHolder() *Holder { return &Holder{} }

// Current returns a copy of the held result and whether one is present.
func (h *Holder) Current() (Result, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Result{}, false
	}
	return h.current.Clone(), true
}

// Set replaces the held result. The previous value is discarded, not merged.
func (h *Holder) Set(r Result) {
	snap := r.Clone()
	h.mu.Lock()
	h.current = &snap
	h.mu.Unlock()
}

// Clear empties the holder.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}
