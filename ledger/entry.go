/*
entry.go - Derived computations on a ledger entry

PURPOSE:
  Pure functions over one Entry: how much has been paid, how much is
  outstanding, and the derived three-way payment status. No I/O here.

STATUS CLASSIFICATION:
  UNPAID  paid amount <= 0
  PAID    paid amount >= total (within Epsilon)
  PARTIAL otherwise

  Tie-break: a zero-total invoice with zero payments is UNPAID, not PAID.
  Classifying it PAID would be vacuous - nothing was ever owed or settled.

EPSILON:
  Epsilon (0.001) absorbs rounding noise at comparison sites. It is applied
  consistently here and in the overpayment guard, never ad hoc per call
  site. It exists to tolerate rounding, not to permit real overpayment.

SEE ALSO:
  - invoice/service.go: AddPayment uses Outstanding + Epsilon as the guard
*/
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Epsilon is the single tolerance applied wherever monetary values are
// compared. 0.001 is below half a cent, so it can never mask a real
// one-cent discrepancy.
var Epsilon = decimal.NewFromFloat(0.001)

// =============================================================================
// STATUS - Derived, never stored
// =============================================================================

type Status string

const (
	StatusUnpaid  Status = "UNPAID"
	StatusPartial Status = "PARTIAL"
	StatusPaid    Status = "PAID"
)

// ParseStatus accepts the canonical status names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusUnpaid:
		return StatusUnpaid, nil
	case StatusPartial:
		return StatusPartial, nil
	case StatusPaid:
		return StatusPaid, nil
	default:
		return "", fmt.Errorf("invalid status %q: expected UNPAID, PARTIAL, or PAID", s)
	}
}

// =============================================================================
// DERIVED AMOUNTS
// =============================================================================

// PaidAmount is the sum of all recorded payments.
func (e *Entry) PaidAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range e.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// Outstanding is the unpaid remainder: Total - PaidAmount.
// PaidAmount + Outstanding == Total always holds exactly, because both
// derive from the same decimals.
func (e *Entry) Outstanding() decimal.Decimal {
	return e.Total.Sub(e.PaidAmount())
}

// Status classifies the entry from its payments versus its total.
func (e *Entry) Status() Status {
	paid := e.PaidAmount()
	if !paid.IsPositive() {
		// Covers the zero-total, zero-payment entry: UNPAID, not PAID.
		return StatusUnpaid
	}
	if paid.GreaterThanOrEqual(e.Total.Sub(Epsilon)) {
		return StatusPaid
	}
	return StatusPartial
}
