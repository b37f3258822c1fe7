// Command invoicectl saves, lists and renders invoices without the HTTP
// server, using the same configuration.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/diewo77/hoadon/internal/bootstrap"
	"github.com/diewo77/hoadon/internal/config"
	"github.com/diewo77/hoadon/internal/logger"
	"github.com/diewo77/hoadon/internal/models"
	"github.com/diewo77/hoadon/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stdin).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "invoicectl:", err)
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp(out io.Writer, in io.Reader) *cli.App {
	return &cli.App{
		Name:      "invoicectl",
		Usage:     "manage stored invoices and render them to PDF",
		Writer:    out,
		Reader:    in,
		ErrWriter: os.Stderr,
		// main reports errors and picks the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "store", Usage: "store driver: file, sqlite or postgres", EnvVars: []string{"STORE_DRIVER"}},
			&cli.StringFlag{Name: "data-file", Usage: "invoice file used by the file store", EnvVars: []string{"DATA_FILE"}},
			&cli.StringFlag{Name: "dsn", Usage: "database DSN for sql stores", EnvVars: []string{"DATABASE_DSN"}},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "directory for generated PDFs", EnvVars: []string{"PDF_DIR"}},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level"},
		},
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "append an invoice read from a JSON file (- for stdin)",
				ArgsUsage: "FILE",
				Action:    saveAction,
			},
			{
				Name:      "render",
				Usage:     "render an invoice read from a JSON file without storing it",
				ArgsUsage: "FILE",
				Action:    renderAction,
			},
			{
				Name:      "export",
				Usage:     "render a stored invoice by number",
				ArgsUsage: "NUMBER",
				Action:    exportAction,
			},
			{
				Name:   "list",
				Usage:  "list stored invoices",
				Action: listAction,
			},
		},
	}
}

// service builds the invoice service from the environment and global flags.
func service(c *cli.Context) (*services.InvoiceService, error) {
	cfg := config.Load()
	if v := c.String("store"); v != "" {
		cfg.Store.Driver = v
	}
	if v := c.String("data-file"); v != "" {
		cfg.Store.DataFile = v
	}
	if v := c.String("dsn"); v != "" {
		cfg.Store.DSN = v
	}
	if v := c.String("out"); v != "" {
		cfg.Render.OutputDir = v
	}
	cfg.Log.Level = c.String("log-level")
	cfg.Log.Format = "console"

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return bootstrap.InvoiceService(cfg, log.Named("invoicectl"), nil)
}

func readInvoice(c *cli.Context) (models.Invoice, error) {
	var inv models.Invoice
	name := c.Args().First()
	if name == "" {
		return inv, cli.Exit("missing FILE argument", 2)
	}
	var r io.Reader = c.App.Reader
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return inv, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return inv, fmt.Errorf("decode %s: %w", name, err)
	}
	return inv, nil
}

func saveAction(c *cli.Context) error {
	inv, err := readInvoice(c)
	if err != nil {
		return err
	}
	svc, err := service(c)
	if err != nil {
		return err
	}
	if err := svc.Save(c.Context, inv); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "saved %s\n", inv.InvoiceNumber)
	return nil
}

func renderAction(c *cli.Context) error {
	inv, err := readInvoice(c)
	if err != nil {
		return err
	}
	svc, err := service(c)
	if err != nil {
		return err
	}
	doc, err := svc.ExportDirect(c.Context, inv)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, doc.Path)
	return nil
}

func exportAction(c *cli.Context) error {
	number := c.Args().First()
	if number == "" {
		return cli.Exit("missing NUMBER argument", 2)
	}
	svc, err := service(c)
	if err != nil {
		return err
	}
	doc, err := svc.ExportByNumber(c.Context, number)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, doc.Path)
	return nil
}

func listAction(c *cli.Context) error {
	svc, err := service(c)
	if err != nil {
		return err
	}
	invoices, err := svc.List(c.Context)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\t%s\n",
			inv.InvoiceNumber, inv.InvoiceDate, inv.CustomerName, inv.GrandTotal.Format(0))
	}
	return nil
}
