/*
Package config loads the tool configuration from config.toml.

PURPOSE:
  One config.toml per config directory holds the company identity and the
  invoice settings (number format, currency, tax, due terms) plus the
  output directory for rendered artifacts. Loaded with viper, validated
  with go-playground/validator before anything else runs.

CONFIG DIRECTORY RESOLUTION:
  1. Explicit -C flag
  2. $XDG_CONFIG_HOME/invoice (or ~/.config/invoice)
  3. ~/.invoice fallback

SEE ALSO:
  - templates.go: Init() scaffolding for a fresh config directory
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Company Company       `mapstructure:"company" validate:"required"`
	Invoice InvoiceConfig `mapstructure:"invoice" validate:"required"`
	PDF     PDFConfig     `mapstructure:"pdf" validate:"required"`
}

type Company struct {
	Name    string `mapstructure:"name" validate:"required"`
	Address string `mapstructure:"address"`
	City    string `mapstructure:"city"`
	State   string `mapstructure:"state"`
	Zip     string `mapstructure:"zip"`
	Country string `mapstructure:"country"`
	Email   string `mapstructure:"email"`
	Phone   string `mapstructure:"phone"`
	TaxID   string `mapstructure:"tax_id"`
}

type InvoiceConfig struct {
	// NumberFormat supports {year} and {seq:03}/{seq:04}/{seq:05} tokens.
	NumberFormat   string  `mapstructure:"number_format" validate:"required"`
	Currency       string  `mapstructure:"currency" validate:"required"`
	CurrencySymbol string  `mapstructure:"currency_symbol" validate:"required"`
	DueDays        int     `mapstructure:"due_days" validate:"gte=0"`
	TaxRate        float64 `mapstructure:"tax_rate" validate:"gte=0,lt=1"`

	// ConvertTo optionally names a quote currency for the best-effort
	// outstanding-balance conversion shown by list. Empty disables it.
	ConvertTo string `mapstructure:"convert_to"`
}

type PDFConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// Load reads and validates config.toml from dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetDefault("invoice.number_format", "INV-{year}-{seq:04}")
	v.SetDefault("invoice.currency", "USD")
	v.SetDefault("invoice.currency_symbol", "$")
	v.SetDefault("invoice.due_days", 30)
	v.SetDefault("pdf.output_dir", "./output")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config in %s: %w", dir, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Dir resolves the config directory: XDG config dir if available,
// ~/.invoice otherwise.
func Dir() (string, error) {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "invoice"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(home, ".invoice"), nil
}

// ExpandPath expands a leading ~/ against the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolveOutputDir resolves the configured output directory relative to
// the config directory when it is a relative path.
func (c *Config) ResolveOutputDir(cfgDir string) string {
	expanded := ExpandPath(c.PDF.OutputDir)
	if filepath.IsAbs(expanded) {
		return expanded
	}
	return filepath.Join(cfgDir, expanded)
}
