package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// INIT SCAFFOLDING - Template files for a fresh config directory
// =============================================================================

const configTemplate = `[company]
name = "Your Company Name"
address = "123 Business Street"
city = "San Francisco"
state = "CA"
zip = "94102"
country = "USA"
email = "billing@yourcompany.com"
# phone = "+1-555-123-4567"    # optional
# tax_id = "12-3456789"        # optional

[invoice]
number_format = "INV-{year}-{seq:04}"  # e.g. INV-2026-0001
currency = "USD"
currency_symbol = "$"
due_days = 30
tax_rate = 0.0  # e.g. 0.0825 for 8.25%
# convert_to = "BRL"  # optional: show outstanding balance in another currency

[pdf]
output_dir = "./output"
`

const clientsTemplate = `# Define your clients here. The table name (e.g. [acme]) is used
# as the client identifier in the generate command.
#
# Example:
#   invoice generate acme consulting:8

[example-client]
name = "Example Client Inc."
contact = "Jane Smith"          # optional
email = "jane@example.com"
address = "456 Client Avenue"
city = "Los Angeles"
state = "CA"
zip = "90001"
# country = "USA"               # optional
`

const itemsTemplate = `# Define your line items here. The table name (e.g. [consulting]) is used
# as the item identifier in the generate command.
#
# Example:
#   invoice generate acme consulting:8 development:40

[consulting]
description = "Technical Consulting"
rate = 150.00
unit = "hour"

[development]
description = "Software Development"
rate = 125.00
unit = "hour"

[project-setup]
description = "Project Setup & Configuration"
rate = 500.00
unit = "flat"   # fixed price, quantity is typically 1
`

// Init creates dir with template config files and the output directory.
// Fails if dir already exists.
func Init(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("config directory already exists at %s", dir)
	}

	for _, sub := range []string{"", "output"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Join(dir, sub), err)
		}
	}

	files := map[string]string{
		"config.toml":  configTemplate,
		"clients.toml": clientsTemplate,
		"items.toml":   itemsTemplate,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
