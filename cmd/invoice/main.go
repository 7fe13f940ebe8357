/*
main.go - CLI entry point

PURPOSE:
  Command-line front end for the invoice ledger engine. Wires the TOML
  store, the file catalogs, the typst renderer, and the rate provider
  into the lifecycle service, then dispatches flag-based subcommands.

COMMANDS:
  init            Scaffold a config directory with template files
  generate        Create a new invoice (client + item:qty tokens)
  regenerate      Re-render an invoice from its stored items
  edit            Replace an invoice's items and re-render
  add-payment     Record a payment against an invoice
  remove-payment  Delete a recorded payment
  payments        Show the payment history of one invoice
  list            List invoices, newest first, with a financial footer
  status          Ledger overview: next number, catalogs, recent invoices
  clients         List the client catalog
  items           List the item catalog
  report          Render a per-client invoice report
  open            Open an invoice's rendered file

GLOBAL FLAGS (before the subcommand):
  -C       Config directory (default: XDG config dir /invoice)
  -v       Verbose (debug) logging

INVOICE REFERENCES:
  Commands taking an invoice accept either the literal number
  (INV-2025-0042) or a 1-based display index from 'list', where 1 is
  the newest invoice.

EXAMPLES:
  invoice generate acme consulting:8 development:2.5
  invoice add-payment 1 400.00
  invoice report acme -from 2025-01-01 -status UNPAID

SEE ALSO:
  - invoice/service.go: Lifecycle operations behind every command
  - config/config.go: Config directory resolution
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quill/invoice-engine/catalog"
	"github.com/quill/invoice-engine/config"
	"github.com/quill/invoice-engine/fx"
	"github.com/quill/invoice-engine/invoice"
	"github.com/quill/invoice-engine/ledger"
	"github.com/quill/invoice-engine/money"
	"github.com/quill/invoice-engine/render"
	"github.com/quill/invoice-engine/store/tomlstore"
)

func main() {
	cfgDir := flag.String("C", "", "config directory")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(*cfgDir, *verbose, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: invoice [-C dir] [-v] <command> [arguments]

Commands:
  init                                  scaffold the config directory
  generate <client> <item:qty>...       create a new invoice
  regenerate <invoice>                  re-render from stored items
  edit <invoice> <item:qty>...          replace items and re-render
  add-payment <invoice> <amount>        record a payment
  remove-payment <invoice>              delete a payment
  payments <invoice>                    show payment history
  list                                  list invoices
  status                                ledger overview
  clients                               list clients
  items                                 list items
  report <client>                       render a per-client report
  open <invoice>                        open the rendered file

Invoices are referenced by number (INV-2025-0042) or by display
index from 'list' (1 = newest).
`)
}

func run(cfgDir string, verbose bool, command string, args []string) error {
	dir := cfgDir
	if dir == "" {
		var err error
		dir, err = config.Dir()
		if err != nil {
			return err
		}
	}

	// init never loads config: it creates the directory instead.
	if command == "init" {
		if err := config.Init(dir); err != nil {
			return err
		}
		fmt.Printf("Initialized config directory: %s\n", dir)
		fmt.Println("Edit config.toml, clients.toml, and items.toml to get started.")
		return nil
	}

	app, err := newApp(dir, verbose)
	if err != nil {
		return err
	}
	defer app.close()

	ctx := context.Background()
	switch command {
	case "generate":
		return app.generate(ctx, args)
	case "regenerate":
		return app.regenerate(ctx, args)
	case "edit":
		return app.edit(ctx, args)
	case "add-payment":
		return app.addPayment(ctx, args)
	case "remove-payment":
		return app.removePayment(ctx, args)
	case "payments":
		return app.payments(ctx, args)
	case "list":
		return app.list(ctx, args)
	case "status":
		return app.status(ctx, args)
	case "clients":
		return app.clients(args)
	case "items":
		return app.items(args)
	case "report":
		return app.report(ctx, args)
	case "open":
		return app.open(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// =============================================================================
// APP - Wired dependencies shared by all subcommands
// =============================================================================

type app struct {
	cfg   *config.Config
	svc   *invoice.Service
	cat   catalog.Provider
	rates fx.RateProvider
	out   io.Writer
	log   *zap.SugaredLogger
}

func newApp(dir string, verbose bool) (*app, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}
	log := logger.Sugar()

	cat := catalog.NewFiles(
		filepath.Join(dir, "clients.toml"),
		filepath.Join(dir, "items.toml"),
	)
	store := tomlstore.New(filepath.Join(dir, "state.toml"))
	outputDir := cfg.ResolveOutputDir(dir)
	svc := invoice.New(store, cat, render.NewTypst(), cfg, outputDir, log)

	var rates fx.RateProvider = fx.None{}
	if cfg.Invoice.ConvertTo != "" {
		rates = fx.NewFrankfurter()
	}

	return &app{cfg: cfg, svc: svc, cat: cat, rates: rates, out: os.Stdout, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func (a *app) symbol() string { return a.cfg.Invoice.CurrencySymbol }

// resolve maps a display index or literal number to a canonical number.
func (a *app) resolve(ctx context.Context, reference string) (string, error) {
	return a.svc.Resolve(ctx, reference)
}

// =============================================================================
// LIFECYCLE COMMANDS
// =============================================================================

func (a *app) generate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	output := fs.String("o", "", "output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("usage: invoice generate <client> <item:qty>...")
	}

	res, err := a.svc.Generate(ctx, fs.Arg(0), fs.Args()[1:], *output)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Generated %s for %s\n", res.Number, res.Client.Name)
	fmt.Fprintf(a.out, "  Total: %s\n", money.FormatAmount(res.Total, a.symbol()))
	fmt.Fprintf(a.out, "  File:  %s\n", res.Path)
	return nil
}

func (a *app) regenerate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: invoice regenerate <invoice>")
	}
	number, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}

	res, err := a.svc.Regenerate(ctx, number, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Regenerated %s: %s\n", res.Number, res.Path)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: invoice edit <invoice> <item:qty>...")
	}
	number, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}

	res, err := a.svc.Regenerate(ctx, number, args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s\n", res.Number)
	fmt.Fprintf(a.out, "  New total: %s\n", money.FormatAmount(res.Total, a.symbol()))
	fmt.Fprintf(a.out, "  File:      %s\n", res.Path)
	return nil
}

func (a *app) addPayment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-payment", flag.ExitOnError)
	dateStr := fs.String("date", "", "payment date (YYYY-MM-DD, default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: invoice add-payment <invoice> <amount> [-date YYYY-MM-DD]")
	}

	number, err := a.resolve(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid amount %q", fs.Arg(1))
	}

	var date ledger.Date
	if *dateStr != "" {
		if date, err = ledger.ParseDate(*dateStr); err != nil {
			return err
		}
	}

	res, err := a.svc.AddPayment(ctx, number, amount, date)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Recorded %s against %s\n", money.FormatAmount(res.Amount, a.symbol()), res.Invoice)
	a.printBalance(ctx, res.Outstanding, res.Status)
	return nil
}

func (a *app) removePayment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove-payment", flag.ExitOnError)
	index := fs.Int("index", 0, "1-based payment index (default: most recent)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: invoice remove-payment <invoice> [-index n]")
	}

	number, err := a.resolve(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	res, err := a.svc.RemovePayment(ctx, number, *index)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Removed payment of %s (%s) from %s\n",
		money.FormatAmount(res.Removed.Amount, a.symbol()), res.Removed.Date, res.Invoice)
	a.printBalance(ctx, res.Outstanding, res.Status)
	return nil
}

// printBalance shows the outstanding balance after a payment mutation,
// with the best-effort converted figure when conversion is configured.
func (a *app) printBalance(ctx context.Context, outstanding decimal.Decimal, status ledger.Status) {
	if status == ledger.StatusPaid {
		fmt.Fprintln(a.out, "  Invoice is fully paid.")
		return
	}
	fmt.Fprintf(a.out, "  Outstanding: %s (%s)\n", money.FormatAmount(outstanding, a.symbol()), status)
	a.printConverted(ctx, outstanding, "  ")
}

// printConverted appends a converted-currency line when convert_to is
// configured and a rate is available. Silent on any failure.
func (a *app) printConverted(ctx context.Context, amount decimal.Decimal, indent string) {
	quote := a.cfg.Invoice.ConvertTo
	if quote == "" || !amount.IsPositive() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	defer cancel()

	rate, ok := a.rates.Rate(ctx, a.cfg.Invoice.Currency, quote)
	if !ok {
		return
	}
	converted := money.RoundToCents(amount.Mul(rate))
	fmt.Fprintf(a.out, "%s~%s %s\n", indent, converted.StringFixed(2), quote)
}

// =============================================================================
// QUERY COMMANDS
// =============================================================================

func (a *app) payments(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: invoice payments <invoice>")
	}
	number, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}

	e, err := a.svc.Entry(ctx, number)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Payments for %s (total %s)\n", e.Number, money.FormatAmount(e.Total, a.symbol()))
	if len(e.Payments) == 0 {
		fmt.Fprintln(a.out, "  No payments recorded.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tDATE\tAMOUNT")
	for i, p := range e.Payments {
		fmt.Fprintf(w, "  %d\t%s\t%s\n", i+1, p.Date, money.FormatAmount(p.Amount, a.symbol()))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "  Paid: %s  Outstanding: %s  Status: %s\n",
		money.FormatAmount(e.PaidAmount(), a.symbol()),
		money.FormatAmount(e.Outstanding(), a.symbol()),
		e.Status())
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 0, "show only the newest n invoices")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.svc.List(ctx, *limit)
	if err != nil {
		return err
	}
	if res.Count == 0 {
		fmt.Fprintln(a.out, "No invoices yet.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNUMBER\tDATE\tCLIENT\tTOTAL\tSTATUS")
	for _, row := range res.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Index, row.Number, row.Date, row.ClientID,
			money.FormatAmount(row.Total, a.symbol()), row.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if *limit > 0 && len(res.Rows) < res.Count {
		fmt.Fprintf(a.out, "(showing %d of %d invoices)\n", len(res.Rows), res.Count)
	}
	fmt.Fprintf(a.out, "Total: %s  Paid: %s  Outstanding: %s\n",
		money.FormatAmount(res.Total, a.symbol()),
		money.FormatAmount(res.Paid, a.symbol()),
		money.FormatAmount(res.Outstanding, a.symbol()))
	a.printConverted(ctx, res.Outstanding, "")
	return nil
}

func (a *app) status(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: invoice status")
	}

	next, err := a.svc.NextNumber(ctx)
	if err != nil {
		return err
	}
	clients, err := a.cat.Clients()
	if err != nil {
		return err
	}
	items, err := a.cat.Items()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Company:      %s\n", a.cfg.Company.Name)
	fmt.Fprintf(a.out, "Next invoice: %s\n", next)
	fmt.Fprintf(a.out, "Clients:      %d\n", len(clients))
	fmt.Fprintf(a.out, "Items:        %d\n", len(items))

	recent, err := a.svc.List(ctx, 5)
	if err != nil {
		return err
	}
	if recent.Count == 0 {
		fmt.Fprintln(a.out, "No invoices yet.")
		return nil
	}

	fmt.Fprintf(a.out, "\nRecent invoices (%d total):\n", recent.Count)
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	for _, row := range recent.Rows {
		// Whole-unit amounts: cents are noise in the overview.
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
			row.Number, row.Date, money.FormatWhole(row.Total, a.symbol()), row.Status)
	}
	return w.Flush()
}

func (a *app) clients(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: invoice clients")
	}
	clients, err := a.cat.Clients()
	if err != nil {
		return err
	}
	if len(clients) == 0 {
		fmt.Fprintln(a.out, "No clients defined. Edit clients.toml.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCITY")
	for _, id := range catalog.SortedIDs(clients) {
		c := clients[id]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, c.Name, c.Email, c.City)
	}
	return w.Flush()
}

func (a *app) items(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: invoice items")
	}
	items, err := a.cat.Items()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items defined. Edit items.toml.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDESCRIPTION\tRATE\tUNIT")
	for _, id := range catalog.SortedIDs(items) {
		it := items[id]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			id, it.Description, money.FormatAmount(it.Rate, a.symbol()), it.Unit)
	}
	return w.Flush()
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	statusStr := fs.String("status", "", "filter by status (UNPAID, PARTIAL, PAID)")
	output := fs.String("o", "", "output file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: invoice report <client> [-from d] [-to d] [-status s]")
	}

	opts := invoice.ReportOptions{OutputPath: *output}
	if *from != "" {
		d, err := ledger.ParseDate(*from)
		if err != nil {
			return err
		}
		opts.From = &d
	}
	if *to != "" {
		d, err := ledger.ParseDate(*to)
		if err != nil {
			return err
		}
		opts.To = &d
	}
	if *statusStr != "" {
		s, err := ledger.ParseStatus(*statusStr)
		if err != nil {
			return err
		}
		opts.Status = &s
	}

	res, err := a.svc.Report(ctx, fs.Arg(0), opts)
	if err != nil {
		return err
	}
	if res.Count == 0 {
		fmt.Fprintln(a.out, "No invoices match the filter.")
		return nil
	}

	fmt.Fprintf(a.out, "Report for %s: %d invoices\n", fs.Arg(0), res.Count)
	fmt.Fprintf(a.out, "  Total: %s  Paid: %s  Outstanding: %s\n",
		money.FormatAmount(res.Total, a.symbol()),
		money.FormatAmount(res.Paid, a.symbol()),
		money.FormatAmount(res.Outstanding, a.symbol()))
	fmt.Fprintf(a.out, "  File:  %s\n", res.Path)
	return nil
}

func (a *app) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: invoice open <invoice>")
	}
	number, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}

	path, err := a.svc.ArtifactPath(ctx, number)
	if err != nil {
		return err
	}

	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	if err := exec.Command(opener, path).Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "Opened %s\n", path)
	return nil
}
