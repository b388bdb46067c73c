/*
persist.go - Snapshot persistence interface and the debounced autosaver

PURPOSE:
  Defines the interface between the board and its storage, plus the
  Autosaver that turns "notify on every change" into "one write per
  quiet period".

STORE CONTRACT:
  SaveSnapshot overwrites the latest snapshot; LoadSnapshot returns
  (nil, nil) when nothing has ever been saved. Implementations:
  - store/sqlite: production storage
  - board/store:  in-memory, for tests

FAILURE POLICY:
  A failed save is logged and swallowed. In-memory state stays
  authoritative for the rest of the session; manual export is the
  operator's safety net. This mirrors the storage-quota behavior of the
  original kiosk, where a large embedded poster could push the snapshot
  past the browser's storage limit.

DEBOUNCE:
  The timer is reset, never stacked: a burst of edits ends in exactly
  one write once the board has been quiet for the full window.
*/
package board

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultAutosaveDelay is the quiescence window before a save fires.
const DefaultAutosaveDelay = 250 * time.Millisecond

// SnapshotStore persists the latest dashboard snapshot.
type SnapshotStore interface {
	// SaveSnapshot overwrites the stored snapshot.
	SaveSnapshot(ctx context.Context, snap PersistedSnapshot) error

	// LoadSnapshot returns the stored snapshot, or (nil, nil) when none
	// exists.
	LoadSnapshot(ctx context.Context) (*PersistedSnapshot, error)
}

// Autosaver debounces change notifications into snapshot writes.
type Autosaver struct {
	store  SnapshotStore
	source func() PersistedSnapshot
	delay  time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// NewAutosaver wires a snapshot source (typically a closure over
// Board.ExportSnapshot) to a store. delay <= 0 selects the default.
func NewAutosaver(store SnapshotStore, source func() PersistedSnapshot, delay time.Duration) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{store: store, source: source, delay: delay}
}

// Notify schedules a save after the debounce window, resetting any
// pending timer. Safe to call from any goroutine.
func (a *Autosaver) Notify() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.save)
}

// Flush saves immediately, bypassing the debounce. Used on shutdown.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.save()
}

// Close stops the autosaver after a final flush.
func (a *Autosaver) Close() {
	a.Flush()
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
}

func (a *Autosaver) save() {
	snap := a.source()
	if err := a.store.SaveSnapshot(context.Background(), snap); err != nil {
		// State stays authoritative in memory; export is the safety net.
		log.Printf("[Autosave] save failed: %v", err)
	}
}
