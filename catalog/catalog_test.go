package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill/invoice-engine/catalog"
)

func newTestCatalog(t *testing.T) *catalog.Files {
	t.Helper()
	dir := t.TempDir()

	clients := `
[acme]
name = "Acme Inc."
contact = "Jane Smith"
email = "jane@acme.example"
address = "456 Client Avenue"
city = "Los Angeles"
state = "CA"
zip = "90001"
`
	items := `
[consulting]
description = "Technical Consulting"
rate = 150.0
unit = "hour"

[project-setup]
description = "Project Setup"
rate = 500.0
unit = "flat"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clients.toml"), []byte(clients), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items.toml"), []byte(items), 0o644))

	return catalog.NewFiles(filepath.Join(dir, "clients.toml"), filepath.Join(dir, "items.toml"))
}

func TestClient_Lookup(t *testing.T) {
	c := newTestCatalog(t)

	client, err := c.Client("acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc.", client.Name)
	assert.Equal(t, "Jane Smith", client.Contact)
}

func TestClient_NotFound(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Client("globex")
	assert.ErrorIs(t, err, catalog.ErrClientNotFound)
	assert.True(t, catalog.IsNotFound(err))

	var nf *catalog.ClientNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "globex", nf.ID)
}

func TestItem_RateIsDecimal(t *testing.T) {
	c := newTestCatalog(t)

	item, err := c.Item("consulting")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(item.Rate))
	assert.Equal(t, "hour", item.Unit)
}

func TestItem_NotFound(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Item("no-such-item")
	assert.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestMissingCatalogFile(t *testing.T) {
	c := catalog.NewFiles("/nonexistent/clients.toml", "/nonexistent/items.toml")

	_, err := c.Clients()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}

func TestSortedIDs(t *testing.T) {
	c := newTestCatalog(t)

	items, err := c.Items()
	require.NoError(t, err)
	assert.Equal(t, []string{"consulting", "project-setup"}, catalog.SortedIDs(items))
}
