// Package view holds the explicit UI state containers the derived-state
// functions read from. Nothing here is ambient: containers are created by the
// caller and passed by reference.
package view

import "sync"

// Selection tracks which station the user currently has open. Every change
// bumps a generation so late poll results for a previous selection can be
// recognised and dropped.
type Selection struct {
	mu  sync.Mutex
	id  string
	gen uint64
}

// Set switches the selection to id (empty clears it) and returns the new
// generation.
func (s *Selection) Set(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
	s.gen++
	return s.gen
}

// Clear drops the selection.
func (s *Selection) Clear() uint64 { return s.Set("") }

// Current returns the selected station id and generation.
func (s *Selection) Current() (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.gen
}

// Matches reports whether id at generation gen is still the live selection.
func (s *Selection) Matches(id string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id == id && s.gen == gen
}
