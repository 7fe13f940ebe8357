/*
Package catalog provides the client and line-item catalogs.

PURPOSE:
  Invoices reference clients and billable items by id. The catalogs are
  plain TOML files (clients.toml, items.toml) keyed by id; this package
  loads them and answers lookups. The ledger core never mutates catalogs
  and only consumes them through the Provider interface.

FILE SHAPE (clients.toml):
  [acme]
  name = "Acme Inc."
  email = "ap@acme.example"
  ...

FILE SHAPE (items.toml):
  [consulting]
  description = "Technical Consulting"
  rate = 150.0
  unit = "hour"

Lookups for unknown ids return NotFound-class errors; the caller corrects
the id, nothing is retried.
*/
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// =============================================================================
// RECORDS
// =============================================================================

// Client is one billable party.
type Client struct {
	Name    string `toml:"name"`
	Contact string `toml:"contact,omitempty"`
	Email   string `toml:"email"`
	Address string `toml:"address"`
	City    string `toml:"city"`
	State   string `toml:"state"`
	Zip     string `toml:"zip"`
	Country string `toml:"country,omitempty"`
}

// Item is one billable line-item definition.
type Item struct {
	Description string
	Rate        decimal.Decimal
	Unit        string
}

// =============================================================================
// PROVIDER - Narrow contract consumed by the lifecycle layer
// =============================================================================

// Provider answers catalog lookups. Implementations are read-only.
type Provider interface {
	Client(id string) (Client, error)
	Item(id string) (Item, error)
	Clients() (map[string]Client, error)
	Items() (map[string]Item, error)
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClientNotFound = errors.New("client not found")
	ErrItemNotFound   = errors.New("item not found")
)

type ClientNotFoundError struct {
	ID string
}

func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("client %q not found in clients.toml", e.ID)
}

func (e *ClientNotFoundError) Unwrap() error { return ErrClientNotFound }

type ItemNotFoundError struct {
	ID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %q not found in items.toml", e.ID)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrItemNotFound }

// IsNotFound reports whether the error is either catalog miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound) || errors.Is(err, ErrItemNotFound)
}

// =============================================================================
// FILE PROVIDER - TOML-backed catalogs
// =============================================================================

// Files loads catalogs from clientsPath and itemsPath on every call.
// No caching: like the ledger, catalogs are re-read per operation so
// external edits take effect immediately.
type Files struct {
	ClientsPath string
	ItemsPath   string
}

func NewFiles(clientsPath, itemsPath string) *Files {
	return &Files{ClientsPath: clientsPath, ItemsPath: itemsPath}
}

func (f *Files) Client(id string) (Client, error) {
	clients, err := f.Clients()
	if err != nil {
		return Client{}, err
	}
	c, ok := clients[id]
	if !ok {
		return Client{}, &ClientNotFoundError{ID: id}
	}
	return c, nil
}

func (f *Files) Item(id string) (Item, error) {
	items, err := f.Items()
	if err != nil {
		return Item{}, err
	}
	it, ok := items[id]
	if !ok {
		return Item{}, &ItemNotFoundError{ID: id}
	}
	return it, nil
}

func (f *Files) Clients() (map[string]Client, error) {
	var clients map[string]Client
	if err := loadTOML(f.ClientsPath, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (f *Files) Items() (map[string]Item, error) {
	var raw map[string]rawItem
	if err := loadTOML(f.ItemsPath, &raw); err != nil {
		return nil, err
	}
	items := make(map[string]Item, len(raw))
	for id, ri := range raw {
		items[id] = Item{
			Description: ri.Description,
			Rate:        decimal.NewFromFloat(ri.Rate),
			Unit:        ri.Unit,
		}
	}
	return items, nil
}

// rawItem keeps the TOML float at the boundary; rates become decimals
// immediately after decoding.
type rawItem struct {
	Description string  `toml:"description"`
	Rate        float64 `toml:"rate"`
	Unit        string  `toml:"unit"`
}

func loadTOML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("catalog file not found: %s", path)
		}
		return fmt.Errorf("read catalog %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return nil
}

// SortedIDs returns map keys in lexical order, for stable listings.
func SortedIDs[V any](m map[string]V) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
