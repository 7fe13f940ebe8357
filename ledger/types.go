/*
Package ledger is the invoicing ledger state engine.

PURPOSE:
  This package contains the persisted, append-mostly record of invoices and
  payments, and the invariants it upholds:
  - No invoice loses money: sum(payments) <= total, enforced by rejection
  - Sequence numbers never collide or go backward within a year
  - Entries are never deleted; edits preserve number, issue date, payments

KEY CONCEPTS IN THIS FILE (types.go):
  - Payment: One timestamped partial payment against an invoice
  - Entry: One invoice record with line-item inputs and its payment list
  - Counter: Per-ledger sequence state (last number, last year)
  - Ledger: Counter + append-ordered history, the full persisted value

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all money, never float64 arithmetic
  2. Value semantics: a Ledger is loaded, mutated, and saved as one value;
     no ambient mutable process state
  3. Derived status: UNPAID/PARTIAL/PAID is computed from payments vs total,
     never stored

SEE ALSO:
  - entry.go: Derived computations (paid amount, outstanding, status)
  - sequence.go: Per-year invoice number allocation
  - resolver.go: Human reference -> canonical number mapping
  - store.go: Persistence interface
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT - One partial payment against an invoice
// =============================================================================

// Payment records a single payment. Owned exclusively by its Entry; order
// within Entry.Payments is insertion order and is significant for
// index-based removal.
type Payment struct {
	Amount decimal.Decimal
	Date   Date
}

// =============================================================================
// ENTRY - One invoice record
// =============================================================================

// Entry is one invoice in the ledger history.
//
// IMMUTABILITY:
//   - Number and IssueDate never change after creation
//   - Total and Items are replaced together when the invoice is edited
//   - Payments only grow via AddPayment and shrink via RemovePayment
type Entry struct {
	// Number is the canonical invoice identifier, unique across the ledger.
	Number string

	// ClientID references the external client catalog. The ledger only
	// requires presence, it never validates against the catalog.
	ClientID string

	// IssueDate is the calendar date of creation. Edits and regeneration
	// do not change it.
	IssueDate Date

	// Total is the invoice face value, rounded to cents exactly once when
	// computed from line items.
	Total decimal.Decimal

	// File is the relative filename of the last-rendered artifact. Owned
	// by the lifecycle layer; opaque to the ledger.
	File string

	// Items holds the serialized "item-id:quantity" inputs used to
	// regenerate the invoice. Empty for entries created before
	// item tracking existed.
	Items []string

	// Payments is insertion-ordered.
	Payments []Payment
}

// =============================================================================
// COUNTER - Per-ledger sequence state
// =============================================================================

// Counter tracks the last allocated invoice number and the year it was
// allocated in. Mutated only by invoice creation, and only committed
// together with the new entry.
type Counter struct {
	LastNumber int
	LastYear   int
}

// =============================================================================
// LEDGER - Counter + history
// =============================================================================

// Ledger is the full persisted state: sequence counter plus append-ordered
// invoice history (oldest first). Display order is the reverse.
type Ledger struct {
	Counter Counter
	History []Entry
}

// NewLedger returns an empty ledger with the counter defaulted for year.
// "No ledger yet" is not a failure: stores return this on first use.
func NewLedger(year int) *Ledger {
	return &Ledger{Counter: Counter{LastNumber: 0, LastYear: year}}
}

// Find returns a pointer into History for the entry with the given number,
// or nil if absent. The pointer is only valid until History is modified.
func (l *Ledger) Find(number string) *Entry {
	for i := range l.History {
		if l.History[i].Number == number {
			return &l.History[i]
		}
	}
	return nil
}

// Append adds a new entry at the end of the history.
func (l *Ledger) Append(e Entry) {
	l.History = append(l.History, e)
}
