/*
Package render produces invoice and report artifacts.

PURPOSE:
  The ledger engine treats rendering as an opaque, atomic collaborator:
  given a fully-computed document and an output path, the renderer either
  produces the artifact or fails with diagnostic text. Nothing in here
  reads or writes ledger state.

DOCUMENT TYPES:
  Invoice and Report are plain serializable values. All monetary figures
  arrive already rounded; rendering formats, it never recomputes.

IMPLEMENTATIONS:
  - typst.go: Shells out to the typst CLI
*/
package render

import (
	"context"
	"errors"
	"fmt"
)

// Renderer turns a computed document into a file artifact.
type Renderer interface {
	RenderInvoice(ctx context.Context, doc Invoice, outputPath string) error
	RenderReport(ctx context.Context, doc Report, outputPath string) error
}

// =============================================================================
// DOCUMENTS
// =============================================================================

// Party is a company or client block on a document.
type Party struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	TaxID   string `json:"tax_id"`
}

// Line is one rendered line item.
type Line struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is the complete data for one invoice document.
type Invoice struct {
	Number         string  `json:"number"`
	Date           string  `json:"date"`
	DueDate        string  `json:"due_date"`
	Company        Party   `json:"company"`
	Client         Party   `json:"client"`
	Items          []Line  `json:"items"`
	Subtotal       float64 `json:"subtotal"`
	TaxRate        float64 `json:"tax_rate"` // percentage, e.g. 8.25
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
	CurrencySymbol string  `json:"currency_symbol"`
	PaymentTerms   string  `json:"payment_terms"`
}

// ReportPayment is one payment line in a report detail row.
type ReportPayment struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// ReportRow is one invoice row in a report.
type ReportRow struct {
	Number      string          `json:"number"`
	Date        string          `json:"date"`
	Total       float64         `json:"total"`
	Paid        float64         `json:"paid"`
	Outstanding float64         `json:"outstanding"`
	Payments    []ReportPayment `json:"payments"`
	Status      string          `json:"status"`
}

// Report is the complete data for a per-client invoice report.
type Report struct {
	Company        Party       `json:"company"`
	Client         Party       `json:"client"`
	ClientID       string      `json:"client_id"`
	Rows           []ReportRow `json:"rows"`
	Total          float64     `json:"total"`
	Paid           float64     `json:"paid"`
	Outstanding    float64     `json:"outstanding"`
	CurrencySymbol string      `json:"currency_symbol"`
	GeneratedDate  string      `json:"generated_date"`
	FilterFrom     string      `json:"filter_from"`
	FilterTo       string      `json:"filter_to"`
	FilterStatus   string      `json:"filter_status"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrRendererUnavailable is returned when the rendering engine binary is
// not installed.
var ErrRendererUnavailable = errors.New("rendering engine not available")

// RenderError carries the engine's diagnostic output verbatim.
type RenderError struct {
	Output string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering failed: %s", e.Output)
}
