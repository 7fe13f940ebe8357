/*
store.go - Persistence interface for the ledger

PURPOSE:
  Defines the boundary between the state engine and durable storage.
  The ledger is a single value: stores read it entirely and replace it
  entirely. No in-place mutation, no append-only log, no byte-range writes.

CONTRACT:
  Load: returns the full ledger; if no durable representation exists yet,
        returns a fresh empty ledger (counter defaulted to the current
        year) WITHOUT error. "No ledger yet" is first use, not failure.
  Save: serializes the full ledger and atomically replaces the previous
        representation. A concurrent reader must never observe a partial
        write; write-to-temp-then-rename satisfies this.

READ-MODIFY-WRITE:
  Every lifecycle operation is one Load -> mutate -> validate -> Save
  cycle over a fresh snapshot. Nothing caches a ledger across operations.

IMPLEMENTATIONS:
  - store/tomlstore: Durable TOML file with legacy-format migration
  - ledger/store:    In-memory, for tests

SEE ALSO:
  - invoice/service.go: The only caller of Update
*/
package ledger

import "context"

// Store persists the full ledger value.
type Store interface {
	// Load reads the durable representation, or returns a fresh empty
	// ledger if none exists yet.
	Load(ctx context.Context) (*Ledger, error)

	// Save replaces the durable representation with the given ledger.
	// Whole-file replace semantics: no partial write is ever observable.
	Save(ctx context.Context, l *Ledger) error
}

// Update runs one atomic read-modify-write cycle: load a fresh snapshot,
// apply fn, and save only if fn succeeded. A failing fn leaves the durable
// state untouched.
func Update(ctx context.Context, s Store, fn func(*Ledger) error) error {
	l, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return s.Save(ctx, l)
}
