package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory Store for testing and ephemeral sessions.
// Snapshots are held as serialized JSON so stored data is isolated from
// later mutation of the caller's graph, the same round-trip a durable
// store performs.
type MemStore struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{snaps: make(map[string][]byte)}
}

// Save implements Store.
func (m *MemStore) Save(_ context.Context, name string, snap Snapshot) error {
	data, err := json.Marshal(snap.Strip())
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[name] = data
	return nil
}

// Load implements Store.
func (m *MemStore) Load(_ context.Context, name string) (Snapshot, error) {
	m.mu.RLock()
	data, ok := m.snaps[name]
	m.mu.RUnlock()
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// Delete implements Store.
func (m *MemStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[name]; !ok {
		return ErrNotFound
	}
	delete(m.snaps, name)
	return nil
}

// List implements Store.
func (m *MemStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.snaps))
	for name := range m.snaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
