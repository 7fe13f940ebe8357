/*
Package tomlstore persists the ledger as a human-editable TOML file.

PURPOSE:
  Implements ledger.Store on a single state file (key/value + nested
  records). The file is the sole durable representation of the ledger:
  read entirely on Load, replaced entirely on Save.

ATOMIC REPLACE:
  Save writes to a temp file in the same directory, then renames it over
  the state file. A reader never observes a partial write.

LEGACY MIGRATION:
  Older state files carry a boolean "paid" flag per entry instead of a
  payments list. On load, for each entry:
    - payments present and non-empty: used as-is
    - otherwise, paid == true: one synthesized payment of the full total,
      dated the issue date
    - otherwise: no payments
  The migration runs transparently on every load and is idempotent. The
  on-disk shape is only upgraded when the ledger is next saved; both
  shapes stay readable indefinitely.

BOUNDARY RULE:
  The raw TOML shapes live only in this package. Everything above the
  store sees canonical ledger.Entry values; the legacy flag never leaks.

FILE SHAPE:
  [counter]
  last_number = 7
  last_year = 2025

  [[history]]
  number = "INV-2025-0007"
  client = "acme"
  date = "2025-06-01"
  total = 1200.0
  file = "INV-2025-0007.pdf"
  items = ["consulting:8"]

    [[history.payments]]
    amount = 400.0
    date = "2025-06-15"

SEE ALSO:
  - ledger/store.go: Interface definition and Update helper
  - ledger/store/memory.go: In-memory implementation for tests
*/
package tomlstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/quill/invoice-engine/ledger"
)

// Store implements ledger.Store on a TOML state file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store for the given state file path. The file does not
// need to exist yet; Load treats absence as an empty ledger.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file location.
func (s *Store) Path() string { return s.path }

// =============================================================================
// RAW SHAPES - The deserialization boundary, including the legacy field
// =============================================================================

type rawLedger struct {
	Counter rawCounter `toml:"counter"`
	History []rawEntry `toml:"history,omitempty"`
}

type rawCounter struct {
	LastNumber int `toml:"last_number"`
	LastYear   int `toml:"last_year"`
}

type rawEntry struct {
	Number   string       `toml:"number"`
	Client   string       `toml:"client"`
	Date     ledger.Date  `toml:"date"`
	Total    float64      `toml:"total"`
	File     string       `toml:"file"`
	Paid     bool         `toml:"paid,omitempty"` // legacy shape, read-only
	Items    []string     `toml:"items,omitempty"`
	Payments []rawPayment `toml:"payments,omitempty"`
}

type rawPayment struct {
	Amount float64     `toml:"amount"`
	Date   ledger.Date `toml:"date"`
}

// =============================================================================
// LOAD
// =============================================================================

func (s *Store) Load(_ context.Context) (*ledger.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		// First use: no ledger yet is not a failure.
		return ledger.NewLedger(time.Now().Year()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", s.path, err)
	}

	var raw rawLedger
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", s.path, err)
	}

	l := &ledger.Ledger{
		Counter: ledger.Counter{
			LastNumber: raw.Counter.LastNumber,
			LastYear:   raw.Counter.LastYear,
		},
		History: make([]ledger.Entry, 0, len(raw.History)),
	}
	for _, re := range raw.History {
		l.History = append(l.History, migrate(re))
	}
	return l, nil
}

// migrate normalizes one raw entry into the canonical shape. Idempotent:
// an already-migrated entry passes through unchanged.
func migrate(re rawEntry) ledger.Entry {
	e := ledger.Entry{
		Number:    re.Number,
		ClientID:  re.Client,
		IssueDate: re.Date,
		Total:     decimal.NewFromFloat(re.Total),
		File:      re.File,
		Items:     re.Items,
	}

	switch {
	case len(re.Payments) > 0:
		e.Payments = make([]ledger.Payment, len(re.Payments))
		for i, rp := range re.Payments {
			e.Payments[i] = ledger.Payment{
				Amount: decimal.NewFromFloat(rp.Amount),
				Date:   rp.Date,
			}
		}
	case re.Paid:
		// Legacy flag: synthesize a single full payment on the issue date.
		e.Payments = []ledger.Payment{{Amount: e.Total, Date: re.Date}}
	}
	return e
}

// =============================================================================
// SAVE
// =============================================================================

func (s *Store) Save(_ context.Context, l *ledger.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := rawLedger{
		Counter: rawCounter{
			LastNumber: l.Counter.LastNumber,
			LastYear:   l.Counter.LastYear,
		},
		History: make([]rawEntry, 0, len(l.History)),
	}
	for _, e := range l.History {
		re := rawEntry{
			Number: e.Number,
			Client: e.ClientID,
			Date:   e.IssueDate,
			Total:  e.Total.InexactFloat64(),
			File:   e.File,
			Items:  e.Items,
		}
		for _, p := range e.Payments {
			re.Payments = append(re.Payments, rawPayment{
				Amount: p.Amount.InexactFloat64(),
				Date:   p.Date,
			})
		}
		raw.History = append(raw.History, re)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	return replaceFile(s.path, buf.Bytes())
}

// replaceFile writes data to a temp file in the target directory and
// renames it into place.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close ledger file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod ledger file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger file: %w", err)
	}
	return nil
}
