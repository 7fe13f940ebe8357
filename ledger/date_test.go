package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill/invoice-engine/ledger"
)

func TestParseDate(t *testing.T) {
	d, err := ledger.ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, "2025-06-15", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"06/15/2025", "2025-6-15", "yesterday", ""} {
		_, err := ledger.ParseDate(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDate_Comparison(t *testing.T) {
	a := ledger.NewDate(2025, time.March, 1)
	b := ledger.NewDate(2025, time.March, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(ledger.NewDate(2025, time.March, 1)))
	assert.False(t, a.IsZero())
	assert.True(t, ledger.Date{}.IsZero())
}

func TestDate_AddDaysCrossesMonth(t *testing.T) {
	d := ledger.NewDate(2025, time.January, 25).AddDays(30)
	assert.Equal(t, "2025-02-24", d.String())
}

func TestDate_TextRoundTrip(t *testing.T) {
	d := ledger.NewDate(2025, time.December, 31)

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", string(text))

	var back ledger.Date
	require.NoError(t, back.UnmarshalText(text))
	assert.True(t, d.Equal(back))
}
