package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill/invoice-engine/ledger"
)

// =============================================================================
// ALLOCATION
// =============================================================================

func TestNextNumber_ContinuesWithinYear(t *testing.T) {
	c := ledger.Counter{LastNumber: 7, LastYear: 2025}
	assert.Equal(t, 8, ledger.NextNumber(c, 2025))
}

func TestNextNumber_ResetsOnYearRollover(t *testing.T) {
	// GIVEN: last allocation was #7 in 2025
	// WHEN:  allocating in calendar year 2026
	// THEN:  the sequence is 1, not 8
	c := ledger.Counter{LastNumber: 7, LastYear: 2025}
	assert.Equal(t, 1, ledger.NextNumber(c, 2026))
}

func TestNextNumber_ResetRegardlessOfHowHighItWas(t *testing.T) {
	c := ledger.Counter{LastNumber: 99999, LastYear: 2024}
	assert.Equal(t, 1, ledger.NextNumber(c, 2025))
}

func TestNextNumber_FreshCounter(t *testing.T) {
	c := ledger.Counter{LastNumber: 0, LastYear: 2025}
	assert.Equal(t, 1, ledger.NextNumber(c, 2025))
}

func TestNextNumber_DoesNotMutateCounter(t *testing.T) {
	c := ledger.Counter{LastNumber: 7, LastYear: 2025}
	_ = ledger.NextNumber(c, 2025)
	assert.Equal(t, ledger.Counter{LastNumber: 7, LastYear: 2025}, c)
}

func TestNextNumber_NeverRepeatsWithinYear(t *testing.T) {
	// Simulate the caller committing after each allocation.
	c := ledger.Counter{LastNumber: 0, LastYear: 2025}
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seq := ledger.NextNumber(c, 2025)
		assert.False(t, seen[seq], "sequence %d repeated", seq)
		seen[seq] = true
		c.LastNumber = seq
		c.LastYear = 2025
	}
}

// =============================================================================
// FORMATTING
// =============================================================================

func TestFormatNumber_Tokens(t *testing.T) {
	cases := []struct {
		template string
		want     string
	}{
		{"INV-{year}-{seq:04}", "INV-2025-0042"},
		{"{year}/{seq:03}", "2025/042"},
		{"{seq:05}", "00042"},
		{"FLAT-42", "FLAT-42"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ledger.FormatNumber(c.template, 2025, 42), "template %q", c.template)
	}
}

func TestFormatNumber_UnrecognizedTokensPassThrough(t *testing.T) {
	// A typo'd token is not an error; it survives verbatim.
	got := ledger.FormatNumber("INV-{yr}-{seq:02}-{seq:04}", 2025, 7)
	assert.Equal(t, "INV-{yr}-{seq:02}-0007", got)
}

func TestAllocate(t *testing.T) {
	c := ledger.Counter{LastNumber: 7, LastYear: 2025}

	seq, number := ledger.Allocate(c, 2025, "INV-{year}-{seq:04}")
	assert.Equal(t, 8, seq)
	assert.Equal(t, "INV-2025-0008", number)

	seq, number = ledger.Allocate(c, 2026, "INV-{year}-{seq:04}")
	assert.Equal(t, 1, seq)
	assert.Equal(t, "INV-2026-0001", number)
}
