package invoice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill/invoice-engine/catalog"
	"github.com/quill/invoice-engine/invoice"
	"github.com/quill/invoice-engine/ledger"
)

// seedReportLedger generates three acme invoices across the year and
// pays the first in full and the second halfway.
func seedReportLedger(t *testing.T, svc *invoice.Service) []string {
	t.Helper()
	ctx := context.Background()
	numbers := make([]string, 0, 3)

	for _, issue := range []string{"2025-02-10", "2025-05-20", "2025-08-01"} {
		d := day(t, issue)
		svc.Now = func() ledger.Date { return d }
		res, err := svc.Generate(ctx, "acme", []string{"consulting:8"}, "")
		require.NoError(t, err)
		numbers = append(numbers, res.Number)
	}

	_, err := svc.AddPayment(ctx, numbers[0], dec(t, "1000.00"), day(t, "2025-03-01"))
	require.NoError(t, err)
	_, err = svc.AddPayment(ctx, numbers[1], dec(t, "500.00"), day(t, "2025-06-01"))
	require.NoError(t, err)
	return numbers
}

func TestReport_AllInvoices(t *testing.T) {
	svc, _, rend := newTestService(t)
	seedReportLedger(t, svc)

	res, err := svc.Report(context.Background(), "acme", invoice.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.True(t, dec(t, "3000.00").Equal(res.Total), "got %s", res.Total)
	assert.True(t, dec(t, "1500.00").Equal(res.Paid), "got %s", res.Paid)
	assert.True(t, dec(t, "1500.00").Equal(res.Outstanding), "got %s", res.Outstanding)

	require.Len(t, rend.reports, 1)
	doc := rend.reports[0]
	assert.Equal(t, "acme", doc.ClientID)
	require.Len(t, doc.Rows, 3)
	assert.Equal(t, "PAID", doc.Rows[0].Status)
	require.Len(t, doc.Rows[0].Payments, 1)
	assert.Equal(t, "PARTIAL", doc.Rows[1].Status)
	assert.Equal(t, "UNPAID", doc.Rows[2].Status)
}

func TestReport_DateRangeFilter(t *testing.T) {
	svc, _, _ := newTestService(t)
	seedReportLedger(t, svc)

	from := day(t, "2025-04-01")
	to := day(t, "2025-06-30")
	res, err := svc.Report(context.Background(), "acme", invoice.ReportOptions{From: &from, To: &to})
	require.NoError(t, err)

	// Only the May invoice falls in the window.
	assert.Equal(t, 1, res.Count)
	assert.True(t, dec(t, "500.00").Equal(res.Paid))
}

func TestReport_StatusFilter(t *testing.T) {
	svc, _, rend := newTestService(t)
	seedReportLedger(t, svc)

	status := ledger.StatusUnpaid
	res, err := svc.Report(context.Background(), "acme", invoice.ReportOptions{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count)
	assert.True(t, dec(t, "1000.00").Equal(res.Outstanding))

	require.Len(t, rend.reports, 1)
	assert.Equal(t, "UNPAID", rend.reports[0].FilterStatus)
}

func TestReport_EmptyMatchRendersNothing(t *testing.T) {
	svc, _, rend := newTestService(t)
	seedReportLedger(t, svc)

	from := day(t, "2030-01-01")
	res, err := svc.Report(context.Background(), "acme", invoice.ReportOptions{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Count)
	assert.Empty(t, rend.reports)
}

func TestReport_UnknownClient(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Report(context.Background(), "ghost", invoice.ReportOptions{})
	assert.ErrorIs(t, err, catalog.ErrClientNotFound)
}
