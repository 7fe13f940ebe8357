/*
service.go - Invoice lifecycle operations

PURPOSE:
  The four mutating operations of the ledger - generate, edit/regenerate,
  add payment, remove payment - plus the read-only queries behind the CLI
  (list, payments, status preview, report, artifact path).

ATOMICITY:
  Every mutating operation is one load -> mutate -> validate -> save cycle
  over a full ledger snapshot. All validation and all external work
  (catalog lookups, rendering) happens BEFORE the save; a failure anywhere
  aborts with no durable mutation. Generation commits the sequence counter
  and the new entry in the same save, so a crash between allocation and
  persistence cannot burn a number.

NO CACHING:
  The service never holds a ledger across operations. Each call loads a
  fresh snapshot, consistent with the single-writer, whole-file-replace
  store discipline.

SEE ALSO:
  - ledger/store.go: Update helper used by the payment operations
  - lines.go: Line-item computation, the rounding site
*/
package invoice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quill/invoice-engine/catalog"
	"github.com/quill/invoice-engine/config"
	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/render"
)

// Service wires the ledger store to its collaborators.
type Service struct {
	Store     ledger.Store
	Catalog   catalog.Provider
	Renderer  render.Renderer
	Config    *config.Config
	OutputDir string
	Log       *zap.SugaredLogger

	// Now overrides the clock in tests. Nil means ledger.Today.
	Now func() ledger.Date
}

func New(store ledger.Store, cat catalog.Provider, renderer render.Renderer,
	cfg *config.Config, outputDir string, log *zap.SugaredLogger) *Service {
	return &Service{
		Store:     store,
		Catalog:   cat,
		Renderer:  renderer,
		Config:    cfg,
		OutputDir: outputDir,
		Log:       log,
	}
}

func (s *Service) today() ledger.Date {
	if s.Now != nil {
		return s.Now()
	}
	return ledger.Today()
}

func (s *Service) logger() *zap.SugaredLogger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop().Sugar()
}

// =============================================================================
// GENERATE
// =============================================================================

type GenerateResult struct {
	Number string
	Client catalog.Client
	Total  decimal.Decimal
	Path   string
}

// Generate creates a new invoice: allocates the next number, prices the
// line items, renders the artifact, and commits counter and entry
// together. outputPath overrides the default <output-dir>/<number>.pdf.
func (s *Service) Generate(ctx context.Context, clientID string, items []string, outputPath string) (*GenerateResult, error) {
	if len(items) == 0 {
		return nil, ledger.ErrNoItems
	}

	client, err := s.Catalog.Client(clientID)
	if err != nil {
		return nil, err
	}

	l, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	year := today.Year()
	seq, number := ledger.Allocate(l.Counter, year, s.Config.Invoice.NumberFormat)
	if l.Find(number) != nil {
		return nil, fmt.Errorf("invoice number %s already exists (corrupt counter?)", number)
	}

	lines, totals, err := s.computeLines(items)
	if err != nil {
		return nil, err
	}

	filename := number + ".pdf"
	path := outputPath
	if path == "" {
		path = filepath.Join(s.OutputDir, filename)
	}

	doc := s.buildInvoiceDoc(number, today, client, lines, totals)
	if err := s.Renderer.RenderInvoice(ctx, doc, path); err != nil {
		return nil, err
	}

	// Commit counter and entry in the same save.
	l.Counter = ledger.Counter{LastNumber: seq, LastYear: year}
	l.Append(ledger.Entry{
		Number:    number,
		ClientID:  clientID,
		IssueDate: today,
		Total:     totals.Total,
		File:      filename,
		Items:     slices.Clone(items),
	})
	if err := s.Store.Save(ctx, l); err != nil {
		return nil, err
	}

	s.logger().Debugw("generated invoice",
		"number", number, "client", clientID, "total", totals.Total)
	return &GenerateResult{Number: number, Client: client, Total: totals.Total, Path: path}, nil
}

// =============================================================================
// EDIT / REGENERATE
// =============================================================================

type RegenerateResult struct {
	Number  string
	Total   decimal.Decimal
	Path    string
	Updated bool
}

// Regenerate re-renders an existing invoice. With newItems the totals are
// recomputed and the entry is updated in place (number, issue date, and
// payments untouched). Without newItems it re-renders from the stored
// item list and mutates nothing; a pre-item-tracking entry fails with
// NoStoredItems. The invoice number must already be canonical.
func (s *Service) Regenerate(ctx context.Context, number string, newItems []string) (*RegenerateResult, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	e := l.Find(number)
	if e == nil {
		return nil, &ledger.InvoiceNotFoundError{Reference: number}
	}

	itemsToUse := newItems
	if len(itemsToUse) == 0 {
		if len(e.Items) == 0 {
			return nil, &ledger.NoStoredItemsError{Invoice: number}
		}
		itemsToUse = e.Items
	}

	client, err := s.Catalog.Client(e.ClientID)
	if err != nil {
		return nil, err
	}

	lines, totals, err := s.computeLines(itemsToUse)
	if err != nil {
		return nil, err
	}

	filename := number + ".pdf"
	path := filepath.Join(s.OutputDir, filename)

	doc := s.buildInvoiceDoc(number, e.IssueDate, client, lines, totals)
	if err := s.Renderer.RenderInvoice(ctx, doc, path); err != nil {
		return nil, err
	}

	updated := len(newItems) > 0
	if updated {
		e.Items = slices.Clone(newItems)
		e.Total = totals.Total
		e.File = filename
		if err := s.Store.Save(ctx, l); err != nil {
			return nil, err
		}
		s.logger().Debugw("updated invoice", "number", number, "total", totals.Total)
	}

	return &RegenerateResult{Number: number, Total: totals.Total, Path: path, Updated: updated}, nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

type PaymentResult struct {
	Invoice     string
	Amount      decimal.Decimal
	Outstanding decimal.Decimal
	Status      ledger.Status
}

// AddPayment records a payment against an invoice. Rejects non-positive
// amounts and anything past the outstanding balance (plus Epsilon for
// rounding noise).
func (s *Service) AddPayment(ctx context.Context, number string, amount decimal.Decimal, date ledger.Date) (*PaymentResult, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidPaymentAmount
	}
	if date.IsZero() {
		date = s.today()
	}

	var res *PaymentResult
	err := ledger.Update(ctx, s.Store, func(l *ledger.Ledger) error {
		e := l.Find(number)
		if e == nil {
			return &ledger.InvoiceNotFoundError{Reference: number}
		}

		outstanding := e.Outstanding()
		if amount.GreaterThan(outstanding.Add(ledger.Epsilon)) {
			return &ledger.OverPaymentError{Invoice: number, Max: outstanding}
		}

		e.Payments = append(e.Payments, ledger.Payment{Amount: amount, Date: date})
		res = &PaymentResult{
			Invoice:     number,
			Amount:      amount,
			Outstanding: e.Outstanding(),
			Status:      e.Status(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Debugw("recorded payment",
		"invoice", number, "amount", amount, "outstanding", res.Outstanding)
	return res, nil
}

type RemovePaymentResult struct {
	Invoice     string
	Removed     ledger.Payment
	Outstanding decimal.Decimal
	Status      ledger.Status
}

// RemovePayment deletes one payment, order-preserving. index is 1-based;
// 0 means the most recently added payment.
func (s *Service) RemovePayment(ctx context.Context, number string, index int) (*RemovePaymentResult, error) {
	var res *RemovePaymentResult
	err := ledger.Update(ctx, s.Store, func(l *ledger.Ledger) error {
		e := l.Find(number)
		if e == nil {
			return &ledger.InvoiceNotFoundError{Reference: number}
		}
		if len(e.Payments) == 0 {
			return &ledger.NoPaymentsError{Invoice: number}
		}

		idx := index
		if idx == 0 {
			idx = len(e.Payments)
		}
		if idx < 1 || idx > len(e.Payments) {
			return &ledger.InvalidPaymentIndexError{Invoice: number, Index: index, Count: len(e.Payments)}
		}

		removed := e.Payments[idx-1]
		e.Payments = append(e.Payments[:idx-1], e.Payments[idx:]...)
		res = &RemovePaymentResult{
			Invoice:     number,
			Removed:     removed,
			Outstanding: e.Outstanding(),
			Status:      e.Status(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger().Debugw("removed payment",
		"invoice", number, "amount", res.Removed.Amount)
	return res, nil
}

// =============================================================================
// READ-ONLY QUERIES
// =============================================================================

// Resolve maps a display index or literal number to a canonical invoice
// number against a fresh snapshot.
func (s *Service) Resolve(ctx context.Context, reference string) (string, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return "", err
	}
	return ledger.Resolve(l, reference)
}

// Entry returns a snapshot copy of one invoice entry.
func (s *Service) Entry(ctx context.Context, number string) (*ledger.Entry, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := l.Find(number)
	if e == nil {
		return nil, &ledger.InvoiceNotFoundError{Reference: number}
	}
	copied := *e
	copied.Items = slices.Clone(e.Items)
	copied.Payments = slices.Clone(e.Payments)
	return &copied, nil
}

// NextNumber previews the number the next generated invoice would get,
// without committing anything.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return "", err
	}
	_, number := ledger.Allocate(l.Counter, s.today().Year(), s.Config.Invoice.NumberFormat)
	return number, nil
}

type ListRow struct {
	Index    int
	Number   string
	Date     ledger.Date
	Total    decimal.Decimal
	Status   ledger.Status
	ClientID string
}

type ListResult struct {
	Rows []ListRow

	// Count is the full history size, independent of any limit.
	Count int

	// Sums cover the shown rows only.
	Total       decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// List returns invoices newest first with their 1-based display index,
// optionally limited, plus a financial summary of the shown rows.
func (s *Service) List(ctx context.Context, limit int) (*ListResult, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	display := lo.Reverse(slices.Clone(l.History))
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	rows := lo.Map(display, func(e ledger.Entry, i int) ListRow {
		return ListRow{
			Index:    i + 1,
			Number:   e.Number,
			Date:     e.IssueDate,
			Total:    e.Total,
			Status:   e.Status(),
			ClientID: e.ClientID,
		}
	})

	total := lo.Reduce(display, func(acc decimal.Decimal, e ledger.Entry, _ int) decimal.Decimal {
		return acc.Add(e.Total)
	}, decimal.Zero)
	paid := lo.Reduce(display, func(acc decimal.Decimal, e ledger.Entry, _ int) decimal.Decimal {
		return acc.Add(e.PaidAmount())
	}, decimal.Zero)

	return &ListResult{
		Rows:        rows,
		Count:       len(l.History),
		Total:       total,
		Paid:        paid,
		Outstanding: total.Sub(paid),
	}, nil
}

// ArtifactPath returns the location of an invoice's rendered file.
func (s *Service) ArtifactPath(ctx context.Context, number string) (string, error) {
	l, err := s.Store.Load(ctx)
	if err != nil {
		return "", err
	}
	e := l.Find(number)
	if e == nil {
		return "", &ledger.InvoiceNotFoundError{Reference: number}
	}

	path := filepath.Join(s.OutputDir, e.File)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("invoice file not found: %s (try 'invoice regenerate %s')", path, number)
	}
	return path, nil
}
