/*
resolver.go - Human reference -> canonical invoice number

PURPOSE:
  CLI users refer to invoices either by the 1-based index shown in the
  newest-first listing, or by the literal invoice number. Resolve maps
  either form to the canonical number.

DISPLAY ORDER:
  History is append-ordered, oldest first. The listing shows it reversed,
  so index 1 is always the most recently generated invoice.

ERROR DISTINCTION:
  A numeric reference outside 1..len(history) is an InvalidIndexError: the
  user pointed at a row that doesn't exist. A non-numeric string matching
  no invoice number is an InvoiceNotFoundError. The two are corrected
  differently, so they stay distinct.
*/
package ledger

import "strconv"

// Resolve maps a user-supplied reference to a canonical invoice number.
// Accepts a 1-based display index (newest first) or a literal number.
func Resolve(l *Ledger, reference string) (string, error) {
	if idx, err := strconv.Atoi(reference); err == nil && idx >= 0 {
		if idx == 0 || idx > len(l.History) {
			return "", &InvalidIndexError{Reference: reference, Count: len(l.History)}
		}
		// Display order is history reversed: index 1 = last appended.
		return l.History[len(l.History)-idx].Number, nil
	}

	// Literal invoice number; negative or non-numeric strings land here.
	if l.Find(reference) != nil {
		return reference, nil
	}
	return "", &InvoiceNotFoundError{Reference: reference}
}
