/*
report.go - Per-client invoice report

PURPOSE:
  Filters the ledger history for one client (date range and status are
  optional), derives the per-invoice and aggregate figures from actual
  payment records, and renders the result through the rendering
  collaborator. Read-only: the ledger is never mutated.
*/
package invoice

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/render"
)

// ReportOptions narrows which invoices a report covers.
type ReportOptions struct {
	From   *ledger.Date
	To     *ledger.Date
	Status *ledger.Status

	// OutputPath overrides the default REPORT-<client>-<date>.pdf.
	OutputPath string
}

type ReportResult struct {
	Path        string
	Count       int
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// Report renders a filtered report for one client. A filter matching no
// invoices returns Count 0 without rendering anything.
func (s *Service) Report(ctx context.Context, clientID string, opts ReportOptions) (*ReportResult, error) {
	client, err := s.Catalog.Client(clientID)
	if err != nil {
		return nil, err
	}

	l, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := lo.Filter(l.History, func(e ledger.Entry, _ int) bool {
		if e.ClientID != clientID {
			return false
		}
		if opts.From != nil && e.IssueDate.Before(*opts.From) {
			return false
		}
		if opts.To != nil && e.IssueDate.After(*opts.To) {
			return false
		}
		if opts.Status != nil && e.Status() != *opts.Status {
			return false
		}
		return true
	})

	if len(filtered) == 0 {
		return &ReportResult{Count: 0}, nil
	}

	rows := lo.Map(filtered, func(e ledger.Entry, _ int) render.ReportRow {
		return render.ReportRow{
			Number:      e.Number,
			Date:        e.IssueDate.Format(displayDateLayout),
			Total:       e.Total.InexactFloat64(),
			Paid:        e.PaidAmount().InexactFloat64(),
			Outstanding: e.Outstanding().InexactFloat64(),
			Status:      string(e.Status()),
			Payments: lo.Map(e.Payments, func(p ledger.Payment, _ int) render.ReportPayment {
				return render.ReportPayment{
					Amount: p.Amount.InexactFloat64(),
					Date:   p.Date.Format(displayDateLayout),
				}
			}),
		}
	})

	total := lo.Reduce(filtered, func(acc decimal.Decimal, e ledger.Entry, _ int) decimal.Decimal {
		return acc.Add(e.Total)
	}, decimal.Zero)
	paid := lo.Reduce(filtered, func(acc decimal.Decimal, e ledger.Entry, _ int) decimal.Decimal {
		return acc.Add(e.PaidAmount())
	}, decimal.Zero)
	outstanding := total.Sub(paid)

	today := s.today()
	path := opts.OutputPath
	if path == "" {
		path = filepath.Join(s.OutputDir, fmt.Sprintf("REPORT-%s-%s.pdf", clientID, today))
	}

	doc := render.Report{
		Company:        companyParty(s.Config.Company),
		Client:         clientParty(client),
		ClientID:       clientID,
		Rows:           rows,
		Total:          total.InexactFloat64(),
		Paid:           paid.InexactFloat64(),
		Outstanding:    outstanding.InexactFloat64(),
		CurrencySymbol: s.Config.Invoice.CurrencySymbol,
		GeneratedDate:  today.Format(displayDateLayout),
	}
	if opts.From != nil {
		doc.FilterFrom = opts.From.String()
	}
	if opts.To != nil {
		doc.FilterTo = opts.To.String()
	}
	if opts.Status != nil {
		doc.FilterStatus = string(*opts.Status)
	}

	if err := s.Renderer.RenderReport(ctx, doc, path); err != nil {
		return nil, err
	}

	s.logger().Debugw("generated report", "client", clientID, "invoices", len(filtered))
	return &ReportResult{
		Path:        path,
		Count:       len(filtered),
		Total:       total,
		Paid:        paid,
		Outstanding: outstanding,
	}, nil
}
