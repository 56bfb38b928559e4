package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/report"
)

type dashboardState int

const (
	dashboardStatePeriod dashboardState = iota
	dashboardStateLoading
	dashboardStateSummary
)

type DashboardModel struct {
	CommonModel
	reportService *report.Service
	formatter     *money.Formatter

	state        dashboardState
	periodPicker PeriodPicker
	spinner      spinner.Model

	window period.Window
	custom *period.Range

	summary *report.Summary
	err     error
}

func NewDashboardModel(svc *report.Service, formatter *money.Formatter) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return DashboardModel{
		reportService: svc,
		formatter:     formatter,
		state:         dashboardStatePeriod,
		periodPicker:  NewPeriodPicker(),
		spinner:       s,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateSummary {
		return "Esc: back | p: change period | r: refresh"
	}

	return "Esc: back | Enter: select"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if selected, ok := msg.(PeriodSelectedMsg); ok {
		m.window = selected.Window
		m.custom = selected.Custom
		m.state = dashboardStateLoading
		m.err = nil

		return m, tea.Batch(m.spinner.Tick, m.loadSummaryCmd())
	}

	switch m.state {
	case dashboardStatePeriod:
		return m.updatePeriod(msg)
	case dashboardStateLoading:
		return m.updateLoading(msg)
	case dashboardStateSummary:
		return m.updateSummary(msg)
	}

	return m, nil
}

func (m DashboardModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(summaryLoadedMsg); ok {
		m.state = dashboardStateSummary
		m.summary = result.summary
		m.err = result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "p":
			m.state = dashboardStatePeriod
			m.periodPicker.Reset()

			return m, nil
		case "r":
			m.state = dashboardStateLoading
			return m, tea.Batch(m.spinner.Tick, m.loadSummaryCmd())
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	switch m.state {
	case dashboardStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case dashboardStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Crunching numbers...", m.spinner.View()),
		)

	case dashboardStateSummary:
		return m.viewSummary()
	}

	return ""
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	incomeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	categoryWidth = 20
)

func (m DashboardModel) viewSummary() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	s := m.summary

	var b strings.Builder

	b.WriteString(titleStyle.Render(s.Period) + "\n\n")

	b.WriteString(fmt.Sprintf("Income:       %s\n", incomeStyle.Render(m.formatter.Amount(s.Totals.Income))))
	b.WriteString(fmt.Sprintf("Expenses:     %s\n", expenseStyle.Render(m.formatter.Amount(s.Totals.Expenses))))
	b.WriteString(fmt.Sprintf("Balance:      %s\n", m.formatter.Amount(s.Totals.Balance)))
	b.WriteString(fmt.Sprintf("Transactions: %d\n", s.Totals.Count))

	if len(s.Monthly) > 0 {
		b.WriteString("\n" + titleStyle.Render("By Month") + "\n")

		for _, roll := range s.Monthly {
			b.WriteString(fmt.Sprintf("  %s  %s / %s  (%s)\n",
				roll.Month,
				incomeStyle.Render(m.formatter.Amount(roll.Income)),
				expenseStyle.Render(m.formatter.Amount(roll.Expenses)),
				m.formatter.Amount(roll.Balance)))
		}
	}

	if len(s.Categories) > 0 {
		b.WriteString("\n" + titleStyle.Render("Top Spending Categories") + "\n")

		for _, c := range s.Categories {
			b.WriteString(fmt.Sprintf("  %-*s %s %s\n",
				categoryWidth, c.Category,
				barStyle.Render(percentageBar(c.Percentage)),
				faintStyle.Render(fmt.Sprintf("%s (%.1f%%)", m.formatter.Amount(c.Amount), c.Percentage))))
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

// percentageBar renders a 20-cell bar proportional to the share.
func percentageBar(pct float64) string {
	const cells = 20

	filled := int(pct / 100 * cells)
	if filled > cells {
		filled = cells
	}

	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}

type summaryLoadedMsg struct {
	summary *report.Summary
	err     error
}

func (m DashboardModel) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Dashboard(ctx, m.window, m.custom)

		return summaryLoadedMsg{summary: summary, err: err}
	}
}
