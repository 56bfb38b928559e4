package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/mwarren-dev/finsight/internal/budget"
	budgetStore "github.com/mwarren-dev/finsight/internal/budget/store"
	"github.com/mwarren-dev/finsight/internal/categorize"
	categorizeStore "github.com/mwarren-dev/finsight/internal/categorize/store"
	"github.com/mwarren-dev/finsight/internal/config"
	"github.com/mwarren-dev/finsight/internal/database"
	"github.com/mwarren-dev/finsight/internal/export"
	finsightHttp "github.com/mwarren-dev/finsight/internal/http"
	budgetHandler "github.com/mwarren-dev/finsight/internal/http/budget"
	categorizeHandler "github.com/mwarren-dev/finsight/internal/http/categorize"
	exportHandler "github.com/mwarren-dev/finsight/internal/http/export"
	importHandler "github.com/mwarren-dev/finsight/internal/http/importcsv"
	reportHandler "github.com/mwarren-dev/finsight/internal/http/report"
	txHandler "github.com/mwarren-dev/finsight/internal/http/transaction"
	"github.com/mwarren-dev/finsight/internal/importer"
	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
	txStore "github.com/mwarren-dev/finsight/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	formatter, err := money.NewFormatter(cfg.Report.Locale, cfg.Report.Currency, cfg.Report.DateLayout)
	if err != nil {
		slog.Error("failed to build formatter", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(txStore.New(db))
		budgetService      = budget.NewService(budgetStore.New(db), transactionService)
		categorizeService  = categorize.NewService(categorizeStore.New(db))
		importService      = importer.NewService(transactionService, categorizeService)
		reportService      = report.NewService(transactionService, report.Config{
			TopCategories: cfg.Report.TopCategories,
		})
		exportService = export.NewService(transactionService, formatter, export.Config{})
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		reportH      = reportHandler.NewHandler(reportService)
		budgetH      = budgetHandler.NewHandler(budgetService)
		exportH      = exportHandler.NewHandler(exportService)
		importH      = importHandler.NewHandler(importService)
		categorizeH  = categorizeHandler.NewHandler(categorizeService)
	)

	router := finsightHttp.New(transactionH, reportH, budgetH, exportH, importH, categorizeH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
