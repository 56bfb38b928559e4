package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mwarren-dev/finsight/cmd/tui/internal/view"
	"github.com/mwarren-dev/finsight/internal/config"
	"github.com/mwarren-dev/finsight/internal/database"
	"github.com/mwarren-dev/finsight/internal/export"
	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
	txStore "github.com/mwarren-dev/finsight/internal/transaction/store"
)

type model struct {
	txService     *transaction.Service
	reportService *report.Service
	exportService *export.Service
	formatter     *money.Formatter

	currentView View

	dashboardView view.DashboardModel
	listView      view.ListModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewList      View = 2
	ViewExport    View = 3
)

func initialModel() model {
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

	formatter, err := money.NewFormatter(cfg.Report.Locale, cfg.Report.Currency, cfg.Report.DateLayout)
	if err != nil {
		slog.Error("failed to build formatter", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	reportSvc := report.NewService(txSvc, report.Config{
		TopCategories: cfg.Report.TopCategories,
	})
	exportSvc := export.NewService(txSvc, formatter, export.Config{})

	return model{
		txService:     txSvc,
		reportService: reportSvc,
		exportService: exportSvc,
		formatter:     formatter,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(reportSvc, formatter),
		listView:      view.NewListModel(txSvc, formatter),
		exportView:    view.NewExportModel(exportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.reportService, m.formatter)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService, m.formatter)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Finsight TUI\n\n" +
				"1. Dashboard\n" +
				"2. List Transactions\n" +
				"3. Export Transactions\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewList:
		return m.listView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
