// Package store provides an in-memory SnapshotStore for tests and dev.
package store

import (
	"context"
	"sync"

	"github.com/plantops/safety-board/board"
)

// Memory holds the latest snapshot in process memory.
type Memory struct {
	mu    sync.RWMutex
	snap  *board.PersistedSnapshot
	saves int

	// FailSaves makes every SaveSnapshot return this error, for
	// exercising the swallow-and-keep-state autosave policy.
	FailSaves error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// SaveSnapshot overwrites the stored snapshot.
func (m *Memory) SaveSnapshot(_ context.Context, snap board.PersistedSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	s := snap
	m.snap = &s
	m.saves++
	return nil
}

// LoadSnapshot returns the stored snapshot, or (nil, nil) when empty.
func (m *Memory) LoadSnapshot(_ context.Context) (*board.PersistedSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.snap == nil {
		return nil, nil
	}
	s := *m.snap
	return &s, nil
}

// Saves reports how many writes succeeded (test hook).
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

var _ board.SnapshotStore = (*Memory)(nil)
