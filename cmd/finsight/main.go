// finsight is the command line companion to the API server: dashboard
// summaries, exports and schema migrations without going through HTTP.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mwarren-dev/finsight/internal/config"
	"github.com/mwarren-dev/finsight/internal/database"
	"github.com/mwarren-dev/finsight/internal/export"
	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
	txStore "github.com/mwarren-dev/finsight/internal/transaction/store"
)

var cli struct {
	Summary summaryCmd `cmd:"" help:"Print a dashboard summary for a period."`
	Export  exportCmd  `cmd:"" help:"Export transactions to CSV or PDF."`
	Migrate migrateCmd `cmd:"" help:"Apply pending database migrations."`
}

func main() {
	_ = godotenv.Load()

	ctx := kong.Parse(&cli)
	ctx.FatalIfErrorf(ctx.Run())
}

// env holds everything a command needs once config and DB are up.
type env struct {
	cfg          *config.Config
	db           *sql.DB
	formatter    *money.Formatter
	transactions *transaction.Service
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	formatter, err := money.NewFormatter(cfg.Report.Locale, cfg.Report.Currency, cfg.Report.DateLayout)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &env{
		cfg:          cfg,
		db:           db,
		formatter:    formatter,
		transactions: transaction.NewService(txStore.New(db)),
	}, nil
}

func (e *env) close() {
	e.db.Close()
}

// parsePeriod turns the shared --window/--start/--end flags into service
// arguments.
func parsePeriod(window, start, end string) (period.Window, *period.Range, error) {
	w, err := period.Parse(window)
	if err != nil {
		return "", nil, err
	}

	if w != period.WindowCustom {
		return w, nil, nil
	}

	var custom period.Range

	if start != "" {
		custom.Start, err = time.Parse(time.DateOnly, start)
		if err != nil {
			return "", nil, fmt.Errorf("parsing start date: %w", err)
		}
	}

	if end != "" {
		custom.End, err = time.Parse(time.DateOnly, end)
		if err != nil {
			return "", nil, fmt.Errorf("parsing end date: %w", err)
		}
	}

	return w, &custom, nil
}

type summaryCmd struct {
	Window string `default:"30d" help:"Period window: 7d, 30d, 90d, 1y, all or custom."`
	Start  string `help:"Custom period start (YYYY-MM-DD)."`
	End    string `help:"Custom period end (YYYY-MM-DD)."`
}

func (c *summaryCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	window, custom, err := parsePeriod(c.Window, c.Start, c.End)
	if err != nil {
		return err
	}

	svc := report.NewService(e.transactions, report.Config{
		TopCategories: e.cfg.Report.TopCategories,
	})

	summary, err := svc.Dashboard(context.Background(), window, custom)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", summary.Period)
	fmt.Printf("Income:       %s\n", e.formatter.Amount(summary.Totals.Income))
	fmt.Printf("Expenses:     %s\n", e.formatter.Amount(summary.Totals.Expenses))
	fmt.Printf("Balance:      %s\n", e.formatter.Amount(summary.Totals.Balance))
	fmt.Printf("Transactions: %d\n", summary.Totals.Count)

	if len(summary.Monthly) > 0 {
		fmt.Println("\nBy month:")

		for _, m := range summary.Monthly {
			fmt.Printf("  %s  income %s  expenses %s  balance %s\n",
				m.Month,
				e.formatter.Amount(m.Income),
				e.formatter.Amount(m.Expenses),
				e.formatter.Amount(m.Balance))
		}
	}

	if len(summary.Categories) > 0 {
		fmt.Println("\nTop spending categories:")

		for _, c := range summary.Categories {
			fmt.Printf("  %-20s %s (%.1f%%)\n", c.Category, e.formatter.Amount(c.Amount), c.Percentage)
		}
	}

	return nil
}

type exportCmd struct {
	Format      string `default:"csv" help:"Output format: csv or pdf."`
	Window      string `default:"all" help:"Period window: 7d, 30d, 90d, 1y, all or custom."`
	Start       string `help:"Custom period start (YYYY-MM-DD)."`
	End         string `help:"Custom period end (YYYY-MM-DD)."`
	Subcategory bool   `help:"Include the subcategory column."`
	PaymentInfo bool   `help:"Include payment method and reference columns."`
	Raw         bool   `help:"Write plain decimal amounts instead of currency strings."`
	Out         string `help:"Output path. Defaults to the generated filename in the working directory."`
}

func (c *exportCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	window, custom, err := parsePeriod(c.Window, c.Start, c.End)
	if err != nil {
		return err
	}

	svc := export.NewService(e.transactions, e.formatter, export.Config{})

	artifact, err := svc.Export(context.Background(), export.Options{
		Format:             format,
		Window:             window,
		Custom:             custom,
		IncludeSubcategory: c.Subcategory,
		IncludePaymentInfo: c.PaymentInfo,
		RawAmounts:         c.Raw,
	})
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		out = artifact.Filename
	}

	if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("wrote %s (%d bytes)\n", out, len(artifact.Data))

	return nil
}

type migrateCmd struct{}

func (c *migrateCmd) Run() error {
	e, err := setup()
	if err != nil {
		return err
	}
	defer e.close()

	if err := database.Migrate(e.db); err != nil {
		return err
	}

	fmt.Println("migrations applied")

	return nil
}
