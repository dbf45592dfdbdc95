// Package queue manages the ordered list of songs waiting to be sung.
package queue

import (
	"errors"
	"slices"
	"sync"

	"github.com/samber/lo"
)

var (
	ErrInvalidInput   = errors.New("invalid song data")
	ErrDuplicateEntry = errors.New("song is already in the queue")
	ErrInvalidIndex   = errors.New("invalid index")
	ErrEmptyQueue     = errors.New("queue is empty")
)

// Manager owns the play queue. All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates an empty queue.
func New() *Manager {
	return &Manager{entries: make([]Entry, 0)}
}

// List returns a copy of the queued entries in play order.
func (m *Manager) List() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Add appends an entry unless one with the same song_name and artist is queued.
func (m *Manager) Add(e Entry) error {
	if e.IsEmpty() || e.SongName == "" || e.Artist == "" {
		return ErrInvalidInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if lo.ContainsBy(m.entries, e.sameIdentity) {
		return ErrDuplicateEntry
	}
	m.entries = append(m.entries, e)
	return nil
}

// RemoveAt removes the entry at index; later entries move up one position.
func (m *Manager) RemoveAt(index int) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.entries) {
		return Entry{}, ErrInvalidIndex
	}
	removed := m.entries[index]
	m.entries = slices.Delete(m.entries, index, index+1)
	return removed, nil
}

// PlayNext removes and returns the head of the queue.
func (m *Manager) PlayNext() (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == 0 {
		return Entry{}, ErrEmptyQueue
	}
	next := m.entries[0]
	m.entries = slices.Delete(m.entries, 0, 1)
	return next, nil
}

// Clear drops every queued entry.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]Entry, 0)
}
