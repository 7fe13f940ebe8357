/*
sequence.go - Per-year invoice number allocation

PURPOSE:
  Computes the next invoice sequence number and formats it into a canonical
  invoice number. The sequence continues within a calendar year and resets
  to 1 when the year rolls over, no matter how high the previous year got.

ALLOCATION vs COMMIT:
  NextNumber does NOT mutate the counter. The caller commits LastNumber and
  LastYear only after the new entry is durably persisted, in the same save.
  Mutating here would open a gap: allocate, fail to persist, number lost.

FORMAT TEMPLATE:
  {year}    four-digit year
  {seq:03}  zero-padded sequence, width 3
  {seq:04}  zero-padded sequence, width 4
  {seq:05}  zero-padded sequence, width 5

  Unrecognized tokens pass through unchanged. A typo'd template produces an
  odd-looking number, not an error.

SEE ALSO:
  - invoice/service.go: Generate commits counter and entry together
*/
package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// NextNumber returns the sequence number the next invoice would get in
// currentYear. Pure: the counter is not mutated.
func NextNumber(c Counter, currentYear int) int {
	if c.LastYear == currentYear {
		return c.LastNumber + 1
	}
	return 1 // year rollover resets the sequence
}

// FormatNumber substitutes the template tokens for year and sequence.
func FormatNumber(template string, year, seq int) string {
	r := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{seq:03}", fmt.Sprintf("%03d", seq),
		"{seq:04}", fmt.Sprintf("%04d", seq),
		"{seq:05}", fmt.Sprintf("%05d", seq),
	)
	return r.Replace(template)
}

// Allocate combines NextNumber and FormatNumber: the next sequence for
// currentYear plus its formatted invoice number.
func Allocate(c Counter, currentYear int, template string) (int, string) {
	seq := NextNumber(c, currentYear)
	return seq, FormatNumber(template, currentYear, seq)
}
