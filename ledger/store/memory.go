// Package store provides ledger.Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/quill/invoice-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds the ledger in process memory. Load returns a deep copy so
// callers mutate a snapshot, matching the read-modify-write discipline of
// the file-backed store.
type Memory struct {
	mu      sync.RWMutex
	current *ledger.Ledger

	// SaveErr, when set, is returned by Save. Lets tests verify that a
	// failed save leaves no partial mutation behind.
	SaveErr error
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*ledger.Ledger, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ledger.NewLedger(time.Now().Year()), nil
	}
	return clone(m.current), nil
}

func (m *Memory) Save(_ context.Context, l *ledger.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.current = clone(l)
	return nil
}

func clone(l *ledger.Ledger) *ledger.Ledger {
	out := &ledger.Ledger{
		Counter: l.Counter,
		History: make([]ledger.Entry, len(l.History)),
	}
	for i, e := range l.History {
		copied := e
		copied.Items = append([]string(nil), e.Items...)
		copied.Payments = append([]ledger.Payment(nil), e.Payments...)
		out.History[i] = copied
	}
	return out
}
