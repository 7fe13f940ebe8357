/*
Package fx provides the best-effort currency-rate lookup.

PURPOSE:
  An optional side computation: after the authoritative ledger figures are
  computed, the caller may ask for an exchange rate to display a converted
  outstanding balance. The lookup runs with a bounded timeout, and ANY
  failure - network, timeout, bad payload - degrades to "no rate". It can
  never fail or delay a ledger operation.

CONTRACT:
  Rate returns (rate, true) on success and (zero, false) otherwise. There
  is deliberately no error in the signature: absence of a result is not an
  error condition for the caller.
*/
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider answers base/quote exchange-rate lookups.
type RateProvider interface {
	Rate(ctx context.Context, base, quote string) (decimal.Decimal, bool)
}

// DefaultTimeout bounds every lookup. The ledger is already saved by the
// time this runs; three seconds is the most a listing should ever wait.
const DefaultTimeout = 3 * time.Second

// =============================================================================
// FRANKFURTER CLIENT
// =============================================================================

// Frankfurter queries the free frankfurter.dev rate API.
type Frankfurter struct {
	client  *http.Client
	baseURL string
}

func NewFrankfurter() *Frankfurter {
	return &Frankfurter{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: "https://api.frankfurter.dev/v1/latest",
	}
}

// NewFrankfurterWithBaseURL exists for tests against a stub server.
func NewFrankfurterWithBaseURL(baseURL string) *Frankfurter {
	f := NewFrankfurter()
	f.baseURL = baseURL
	return f
}

func (f *Frankfurter) Rate(ctx context.Context, base, quote string) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	u := fmt.Sprintf("%s?base=%s&symbols=%s", f.baseURL, url.QueryEscape(base), url.QueryEscape(quote))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return decimal.Zero, false
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, false
	}

	rate, ok := payload.Rates[quote]
	if !ok || rate <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(rate), true
}

// =============================================================================
// NONE PROVIDER
// =============================================================================

// None never returns a rate. Used when conversion is disabled.
type None struct{}

func (None) Rate(context.Context, string, string) (decimal.Decimal, bool) {
	return decimal.Zero, false
}
