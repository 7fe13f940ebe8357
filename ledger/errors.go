/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All ledger error kinds in one place. Callers classify with errors.Is
  against the sentinels, or errors.As against the structured types when
  they need the offending value.

ERROR CATEGORIES:
  1. NotFound errors   - Unknown invoice reference; user corrects and retries
  2. Validation errors - Rejected before any mutation; ledger left untouched
  3. State errors      - Operation inapplicable to the entry's current state

USAGE:
  var overErr *ledger.OverPaymentError
  if errors.As(err, &overErr) {
      fmt.Printf("max %s remaining\n", overErr.Max)
  }

SEE ALSO:
  - invoice/service.go: Produces these from lifecycle operations
  - resolver.go: Produces the not-found / invalid-index pair
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvoiceNotFound is returned when no history entry matches a
	// literal invoice number.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidIndex is returned when a numeric reference is outside the
	// 1..len(history) display range. Distinct from ErrInvoiceNotFound.
	ErrInvalidIndex = errors.New("invalid invoice index")

	// ErrInvalidPaymentAmount is returned for zero or negative payments.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrOverPayment is returned when a payment would push the paid amount
	// past the invoice total.
	ErrOverPayment = errors.New("payment exceeds outstanding balance")

	// ErrNoPayments is returned by payment removal on an entry with none.
	ErrNoPayments = errors.New("no payments recorded")

	// ErrInvalidPaymentIndex is returned for an explicit payment index
	// outside [1, len(payments)].
	ErrInvalidPaymentIndex = errors.New("invalid payment index")

	// ErrNoStoredItems is returned when regenerating an entry created
	// before item tracking existed.
	ErrNoStoredItems = errors.New("no stored line items")

	// ErrInvalidItemFormat is returned for a malformed "item:qty" token.
	ErrInvalidItemFormat = errors.New("invalid item format")

	// ErrInvalidQuantity is returned for an unparseable or non-positive
	// item quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrNoItems is returned when generation is attempted without any
	// line items.
	ErrNoItems = errors.New("no line items specified")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvoiceNotFoundError identifies the reference that matched nothing.
type InvoiceNotFoundError struct {
	Reference string
}

func (e *InvoiceNotFoundError) Error() string {
	return fmt.Sprintf("invoice %q not found in history", e.Reference)
}

func (e *InvoiceNotFoundError) Unwrap() error { return ErrInvoiceNotFound }

// InvalidIndexError reports a display index outside the valid range.
type InvalidIndexError struct {
	Reference string
	Count     int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid invoice index %q (valid range 1-%d)", e.Reference, e.Count)
}

func (e *InvalidIndexError) Unwrap() error { return ErrInvalidIndex }

// OverPaymentError reports the maximum payment still accepted.
type OverPaymentError struct {
	Invoice string
	Max     decimal.Decimal
}

func (e *OverPaymentError) Error() string {
	return fmt.Sprintf("payment would exceed invoice %s total (max %s remaining)",
		e.Invoice, e.Max.StringFixed(2))
}

func (e *OverPaymentError) Unwrap() error { return ErrOverPayment }

// NoPaymentsError reports removal from an entry without payments.
type NoPaymentsError struct {
	Invoice string
}

func (e *NoPaymentsError) Error() string {
	return fmt.Sprintf("no payments recorded for %s", e.Invoice)
}

func (e *NoPaymentsError) Unwrap() error { return ErrNoPayments }

// InvalidPaymentIndexError reports an out-of-range payment index and how
// many payments the entry actually has.
type InvalidPaymentIndexError struct {
	Invoice string
	Index   int
	Count   int
}

func (e *InvalidPaymentIndexError) Error() string {
	return fmt.Sprintf("invalid payment index %d for %s (only %d payment(s) recorded)",
		e.Index, e.Invoice, e.Count)
}

func (e *InvalidPaymentIndexError) Unwrap() error { return ErrInvalidPaymentIndex }

// NoStoredItemsError marks a pre-item-tracking legacy entry.
type NoStoredItemsError struct {
	Invoice string
}

func (e *NoStoredItemsError) Error() string {
	return fmt.Sprintf("invoice %s has no stored items (generated before item tracking was added)", e.Invoice)
}

func (e *NoStoredItemsError) Unwrap() error { return ErrNoStoredItems }

// InvalidItemFormatError reports a token that is not "item:quantity".
type InvalidItemFormatError struct {
	Input string
}

func (e *InvalidItemFormatError) Error() string {
	return fmt.Sprintf("invalid item format %q: expected 'item:quantity' (e.g. 'consulting:8')", e.Input)
}

func (e *InvalidItemFormatError) Unwrap() error { return ErrInvalidItemFormat }

// InvalidQuantityError reports a bad quantity and why it was rejected.
type InvalidQuantityError struct {
	Item     string
	Quantity string
	Reason   string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %q for item %q: %s", e.Quantity, e.Item, e.Reason)
}

func (e *InvalidQuantityError) Unwrap() error { return ErrInvalidQuantity }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error is an unknown-reference error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrInvoiceNotFound)
}

// IsValidation reports whether the error was rejected before any mutation
// due to invalid input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPaymentAmount) ||
		errors.Is(err, ErrOverPayment) ||
		errors.Is(err, ErrInvalidPaymentIndex) ||
		errors.Is(err, ErrInvalidIndex) ||
		errors.Is(err, ErrInvalidItemFormat) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrNoItems)
}

// IsStateError reports whether the operation was inapplicable to the
// entry's current state.
func IsStateError(err error) bool {
	return errors.Is(err, ErrNoStoredItems) ||
		errors.Is(err, ErrNoPayments)
}
