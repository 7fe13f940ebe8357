/*
typst.go - Renderer implementation backed by the typst CLI

PURPOSE:
  Serializes the document to JSON in a scratch directory, writes an
  embedded typst template pointed at that JSON, and runs
  `typst compile`. The engine's stderr comes back verbatim inside
  RenderError; a missing binary is ErrRendererUnavailable.

The scratch directory is removed after each render; only the output
artifact remains.
*/
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Typst renders documents by shelling out to the typst binary.
type Typst struct {
	// Binary overrides the executable name, mainly for tests.
	Binary string
}

func NewTypst() *Typst {
	return &Typst{Binary: "typst"}
}

func (t *Typst) RenderInvoice(ctx context.Context, doc Invoice, outputPath string) error {
	return t.compile(ctx, doc, invoiceTemplate, outputPath)
}

func (t *Typst) RenderReport(ctx context.Context, doc Report, outputPath string) error {
	return t.compile(ctx, doc, reportTemplate, outputPath)
}

func (t *Typst) compile(ctx context.Context, doc any, template, outputPath string) error {
	if _, err := exec.LookPath(t.Binary); err != nil {
		return fmt.Errorf("%w: install typst from https://typst.app/", ErrRendererUnavailable)
	}

	scratch, err := os.MkdirTemp("", "invoice-render-*")
	if err != nil {
		return fmt.Errorf("create render scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode render data: %w", err)
	}
	dataPath := filepath.Join(scratch, "data.json")
	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		return fmt.Errorf("write render data: %w", err)
	}

	// The template loads its data by path; typst resolves the path
	// relative to the .typ file, so a bare filename is enough.
	source := strings.ReplaceAll(template, "DATA_JSON_PATH", "data.json")
	typPath := filepath.Join(scratch, "document.typ")
	if err := os.WriteFile(typPath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("write render template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}

	cmd := exec.CommandContext(ctx, t.Binary, "compile", typPath, outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return &RenderError{Output: strings.TrimSpace(string(out))}
	}
	return nil
}
