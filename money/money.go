/*
money.go - Fixed-policy decimal rounding and display formatting

PURPOSE:
  Centralizes the two money policies every other package relies on:
  1. RoundToCents: half-up rounding to 2 fractional digits
  2. GroupThousands: thousands separators for display

ROUNDING DISCIPLINE:
  A monetary total is rounded EXACTLY ONCE, at the point it is computed.
  The rounded decimal is carried from then on - redisplay never re-rounds.
  This prevents rounding error from compounding across repeated display
  calls or across save/load cycles.

DISPLAY vs ARITHMETIC:
  GroupThousands and the Format helpers are display-only. Comparisons and
  arithmetic always operate on decimal.Decimal values, never on formatted
  strings.

SEE ALSO:
  - ledger/entry.go: Derived amounts that consume RoundToCents output
  - invoice/lines.go: Line-item totals, the main rounding site
*/
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING
// =============================================================================

// RoundToCents rounds a monetary value to 2 fractional digits, half-up.
// Call this exactly once, when the value is computed.
func RoundToCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// =============================================================================
// DISPLAY FORMATTING
// =============================================================================

// GroupThousands inserts a separator every 3 digits from the right,
// preserving a leading sign. Display only; never used for comparisons.
func GroupThousands(v int64) string {
	negative := v < 0
	digits := decimal.NewFromInt(v).Abs().String()

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3 + 1)
	if negative {
		b.WriteByte('-')
	}

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatWhole renders a value rounded to whole units with a currency symbol,
// e.g. FormatWhole(1234.56, "$") -> "$1,235". Used in table cells where
// cents would be noise.
func FormatWhole(d decimal.Decimal, symbol string) string {
	whole := d.Round(0).IntPart()
	return symbol + GroupThousands(whole)
}

// FormatAmount renders a value with two decimal places, thousands separators,
// and a currency symbol, e.g. FormatAmount(1234.5, "$") -> "$1,234.50".
// The input is assumed to already be rounded to cents.
func FormatAmount(d decimal.Decimal, symbol string) string {
	fixed := d.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	dot := strings.IndexByte(fixed, '.')
	whole, frac := fixed[:dot], fixed[dot:]

	grouped := groupDigits(whole)
	if negative {
		return symbol + "-" + grouped + frac
	}
	return symbol + grouped + frac
}

func groupDigits(digits string) string {
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
