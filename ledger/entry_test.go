package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quill/invoice-engine/ledger"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func entryWithPayments(total string, payments ...string) ledger.Entry {
	e := ledger.Entry{
		Number:    "INV-2025-0001",
		ClientID:  "acme",
		IssueDate: ledger.NewDate(2025, time.March, 10),
		Total:     dec(total),
	}
	for i, p := range payments {
		e.Payments = append(e.Payments, ledger.Payment{
			Amount: dec(p),
			Date:   ledger.NewDate(2025, time.March, 10+i),
		})
	}
	return e
}

// =============================================================================
// DERIVED AMOUNTS
// =============================================================================

func TestEntry_PaidAmount_SumsPayments(t *testing.T) {
	e := entryWithPayments("1000.00", "400.00", "250.50")
	assert.True(t, dec("650.50").Equal(e.PaidAmount()))
}

func TestEntry_Outstanding_ComplementsPaid(t *testing.T) {
	// paid + outstanding == total, always
	e := entryWithPayments("1000.00", "400.00", "250.50")
	sum := e.PaidAmount().Add(e.Outstanding())
	assert.True(t, e.Total.Equal(sum), "paid + outstanding must equal total")
}

func TestEntry_NoPayments(t *testing.T) {
	e := entryWithPayments("1000.00")
	assert.True(t, decimal.Zero.Equal(e.PaidAmount()))
	assert.True(t, e.Total.Equal(e.Outstanding()))
}

// =============================================================================
// STATUS CLASSIFICATION
// =============================================================================

func TestEntry_Status_Unpaid(t *testing.T) {
	e := entryWithPayments("1000.00")
	assert.Equal(t, ledger.StatusUnpaid, e.Status())
}

func TestEntry_Status_Partial(t *testing.T) {
	e := entryWithPayments("1000.00", "400.00")
	assert.Equal(t, ledger.StatusPartial, e.Status())
}

func TestEntry_Status_Paid(t *testing.T) {
	e := entryWithPayments("1000.00", "400.00", "600.00")
	assert.Equal(t, ledger.StatusPaid, e.Status())
}

func TestEntry_Status_PaidWithinEpsilon(t *testing.T) {
	// A rounding-sized shortfall still classifies as PAID.
	e := entryWithPayments("1000.00", "999.9995")
	assert.Equal(t, ledger.StatusPaid, e.Status())
}

func TestEntry_Status_ZeroTotalZeroPayments_IsUnpaid(t *testing.T) {
	// The vacuous-truth tie-break: 0 paid of 0 owed is NOT "paid in full".
	e := entryWithPayments("0")
	assert.Equal(t, ledger.StatusUnpaid, e.Status())
}

func TestEntry_Status_PaidImpliesOutstandingWithinEpsilon(t *testing.T) {
	entries := []ledger.Entry{
		entryWithPayments("1000.00", "1000.00"),
		entryWithPayments("0.01", "0.01"),
		entryWithPayments("250.00", "100.00", "150.00"),
	}
	for _, e := range entries {
		if e.Status() == ledger.StatusPaid {
			assert.True(t, e.Outstanding().LessThanOrEqual(ledger.Epsilon),
				"PAID entry must have outstanding <= epsilon, got %s", e.Outstanding())
		}
	}
}

func TestEntry_Status_UnpaidImpliesNothingPaid(t *testing.T) {
	e := entryWithPayments("1000.00")
	assert.Equal(t, ledger.StatusUnpaid, e.Status())
	assert.True(t, e.PaidAmount().LessThanOrEqual(ledger.Epsilon))
}

func TestParseStatus(t *testing.T) {
	for input, want := range map[string]ledger.Status{
		"UNPAID":  ledger.StatusUnpaid,
		"partial": ledger.StatusPartial,
		"Paid":    ledger.StatusPaid,
	} {
		got, err := ledger.ParseStatus(input)
		assert.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, err := ledger.ParseStatus("overdue")
	assert.Error(t, err)
}
