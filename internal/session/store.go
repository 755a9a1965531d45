// Package session keeps each visitor's form state between requests.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"mortgage-calculator/internal/form"
)

// Store loads and saves form state by session ID.
type Store interface {
	Load(ctx context.Context, id string) (form.State, bool, error)
	Save(ctx context.Context, id string, state form.State) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session ID.
func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether id looks like one NewID produced.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func encode(state form.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode session state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (form.State, error) {
	var state form.State
	if err := json.Unmarshal(data, &state); err != nil {
		return form.State{}, fmt.Errorf("decode session state: %w", err)
	}
	return state, nil
}

type memoryEntry struct {
	state   form.State
	expires time.Time
}

// MemoryStore keeps sessions in process. Entries expire ttl after their last
// save.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (form.State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return form.State{}, false, nil
	}
	if m.ttl > 0 && !m.now().Before(e.expires) {
		delete(m.entries, id)
		return form.State{}, false, nil
	}
	return e.state, true, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state form.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{state: state, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

// Sweep drops every expired entry and reports how many it removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ttl <= 0 {
		return 0
	}
	now := m.now()
	removed := 0
	for id, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
