package view

import "sync"

// PredictToggle is the global "show prediction" switch for the marker layer.
type PredictToggle struct {
	mu sync.Mutex
	on bool
}

// Toggle flips the switch and returns the new state.
func (t *PredictToggle) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.on = !t.on
	return t.on
}

// Enabled reports whether the prediction overlay is active.
func (t *PredictToggle) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}
