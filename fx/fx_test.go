package fx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/quill/invoice-engine/fx"
)

func TestFrankfurter_Rate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "BRL", r.URL.Query().Get("symbols"))
		w.Write([]byte(`{"base":"USD","rates":{"BRL":5.43}}`))
	}))
	defer srv.Close()

	p := fx.NewFrankfurterWithBaseURL(srv.URL)
	rate, ok := p.Rate(context.Background(), "USD", "BRL")
	assert.True(t, ok)
	assert.True(t, decimal.NewFromFloat(5.43).Equal(rate))
}

func TestFrankfurter_ServerError_NoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := fx.NewFrankfurterWithBaseURL(srv.URL)
	_, ok := p.Rate(context.Background(), "USD", "BRL")
	assert.False(t, ok, "failure degrades to no rate, never an error")
}

func TestFrankfurter_BadPayload_NoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	p := fx.NewFrankfurterWithBaseURL(srv.URL)
	_, ok := p.Rate(context.Background(), "USD", "BRL")
	assert.False(t, ok)
}

func TestFrankfurter_MissingQuote_NoRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"EUR":0.91}}`))
	}))
	defer srv.Close()

	p := fx.NewFrankfurterWithBaseURL(srv.URL)
	_, ok := p.Rate(context.Background(), "USD", "BRL")
	assert.False(t, ok)
}

func TestFrankfurter_Unreachable_NoRate(t *testing.T) {
	// Closed port: the lookup must come back quickly with no rate.
	p := fx.NewFrankfurterWithBaseURL("http://127.0.0.1:1")

	start := time.Now()
	_, ok := p.Rate(context.Background(), "USD", "BRL")
	assert.False(t, ok)
	assert.Less(t, time.Since(start), fx.DefaultTimeout+time.Second)
}

func TestNone(t *testing.T) {
	_, ok := fx.None{}.Rate(context.Background(), "USD", "BRL")
	assert.False(t, ok)
}
