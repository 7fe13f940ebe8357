package tomlstore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/store/tomlstore"
)

func newTestStore(t *testing.T) *tomlstore.Store {
	t.Helper()
	return tomlstore.New(filepath.Join(t.TempDir(), "state.toml"))
}

func writeState(t *testing.T, s *tomlstore.Store, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0o644))
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// =============================================================================
// FIRST USE
// =============================================================================

func TestLoad_MissingFile_ReturnsFreshLedger(t *testing.T) {
	// GIVEN: no state file exists yet
	// WHEN:  loading
	// THEN:  an empty ledger with the counter defaulted to the current
	//        year, and no error
	s := newTestStore(t)

	l, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, l.History)
	assert.Equal(t, 0, l.Counter.LastNumber)
	assert.Equal(t, time.Now().Year(), l.Counter.LastYear)
}

// =============================================================================
// ROUND-TRIP
// =============================================================================

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := ledger.NewLedger(2025)
	in.Counter = ledger.Counter{LastNumber: 2, LastYear: 2025}
	in.Append(ledger.Entry{
		Number:    "INV-2025-0001",
		ClientID:  "acme",
		IssueDate: ledger.NewDate(2025, time.June, 1),
		Total:     dec("1200.50"),
		File:      "INV-2025-0001.pdf",
		Items:     []string{"consulting:8", "development:2.5"},
		Payments: []ledger.Payment{
			{Amount: dec("400.00"), Date: ledger.NewDate(2025, time.June, 15)},
			{Amount: dec("100.25"), Date: ledger.NewDate(2025, time.July, 1)},
		},
	})
	in.Append(ledger.Entry{
		Number:    "INV-2025-0002",
		ClientID:  "globex",
		IssueDate: ledger.NewDate(2025, time.June, 20),
		Total:     dec("300.00"),
		File:      "INV-2025-0002.pdf",
	})

	require.NoError(t, s.Save(ctx, in))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out.History, 2)
	assert.Equal(t, in.Counter, out.Counter)

	e := out.History[0]
	assert.Equal(t, "INV-2025-0001", e.Number)
	assert.Equal(t, "acme", e.ClientID)
	assert.Equal(t, "2025-06-01", e.IssueDate.String())
	assert.True(t, dec("1200.50").Equal(e.Total))
	assert.Equal(t, []string{"consulting:8", "development:2.5"}, e.Items)
	require.Len(t, e.Payments, 2)
	assert.True(t, dec("400.00").Equal(e.Payments[0].Amount))
	assert.Equal(t, "2025-06-15", e.Payments[0].Date.String())

	assert.Empty(t, out.History[1].Payments)
}

func TestSave_ReplacesWholeFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := ledger.NewLedger(2025)
	first.Append(ledger.Entry{Number: "INV-2025-0001", ClientID: "acme",
		IssueDate: ledger.NewDate(2025, time.June, 1), Total: dec("100")})
	require.NoError(t, s.Save(ctx, first))

	second := ledger.NewLedger(2025)
	second.Append(ledger.Entry{Number: "INV-2025-0002", ClientID: "globex",
		IssueDate: ledger.NewDate(2025, time.June, 2), Total: dec("200")})
	require.NoError(t, s.Save(ctx, second))

	out, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, out.History, 1)
	assert.Equal(t, "INV-2025-0002", out.History[0].Number)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, de := range entries {
		assert.False(t, strings.Contains(de.Name(), ".tmp-"), "leftover temp file %s", de.Name())
	}
}

// =============================================================================
// LEGACY MIGRATION
// =============================================================================

const legacyState = `
[counter]
last_number = 2
last_year = 2024

[[history]]
number = "INV-2024-0001"
client = "acme"
date = "2024-03-10"
total = 500.0
file = "INV-2024-0001.pdf"
paid = true

[[history]]
number = "INV-2024-0002"
client = "acme"
date = "2024-04-01"
total = 750.0
file = "INV-2024-0002.pdf"
paid = false
`

func TestLoad_LegacyPaidFlag_SynthesizesPayment(t *testing.T) {
	// GIVEN: a legacy state file with boolean paid flags
	// WHEN:  loading
	// THEN:  paid=true becomes one payment of the full total dated at the
	//        issue date; paid=false becomes no payments
	s := newTestStore(t)
	writeState(t, s, legacyState)

	l, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, l.History, 2)

	paid := l.History[0]
	require.Len(t, paid.Payments, 1)
	assert.True(t, paid.Total.Equal(paid.Payments[0].Amount))
	assert.True(t, paid.IssueDate.Equal(paid.Payments[0].Date))
	assert.Equal(t, ledger.StatusPaid, paid.Status())

	unpaid := l.History[1]
	assert.Empty(t, unpaid.Payments)
	assert.Equal(t, ledger.StatusUnpaid, unpaid.Status())
}

func TestLoad_PaymentsWinOverLegacyFlag(t *testing.T) {
	// An entry carrying both shapes keeps its payments list as-is; the
	// legacy flag is ignored.
	s := newTestStore(t)
	writeState(t, s, `
[counter]
last_number = 1
last_year = 2024

[[history]]
number = "INV-2024-0001"
client = "acme"
date = "2024-03-10"
total = 500.0
file = "INV-2024-0001.pdf"
paid = true

  [[history.payments]]
  amount = 200.0
  date = "2024-05-01"
`)

	l, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, l.History, 1)
	require.Len(t, l.History[0].Payments, 1)
	assert.True(t, dec("200").Equal(l.History[0].Payments[0].Amount))
	assert.Equal(t, ledger.StatusPartial, l.History[0].Status())
}

func TestMigration_Idempotent(t *testing.T) {
	// GIVEN: a legacy file migrated on load
	// WHEN:  saved and loaded again
	// THEN:  the second load is a no-op on the migrated entry
	s := newTestStore(t)
	writeState(t, s, legacyState)
	ctx := context.Background()

	first, err := s.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, first))

	second, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, second.History, 2)

	require.Len(t, second.History[0].Payments, 1)
	assert.True(t, first.History[0].Payments[0].Amount.Equal(second.History[0].Payments[0].Amount))
	assert.True(t, first.History[0].Payments[0].Date.Equal(second.History[0].Payments[0].Date))
	assert.Empty(t, second.History[1].Payments)

	// The upgraded file no longer carries the legacy flag.
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "paid = true")
}

// =============================================================================
// ERRORS
// =============================================================================

func TestLoad_MalformedFile(t *testing.T) {
	s := newTestStore(t)
	writeState(t, s, "not [valid toml")

	_, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse ledger")
}
