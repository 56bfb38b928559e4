package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren-dev/finsight/internal/export"
	"github.com/mwarren-dev/finsight/internal/period"
)

type exportState int

const (
	exportStatePeriod exportState = iota
	exportStateOptions
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state        exportState
	err          error
	periodPicker PeriodPicker

	window period.Window
	custom *period.Range

	form    *huh.Form
	spinner spinner.Model

	// Form bindings
	format      string
	subcategory bool
	paymentInfo bool
	rawAmounts  bool
	dir         string

	writtenPath string
	writtenSize int
}

func NewExportModel(svc *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService: svc,
		state:         exportStatePeriod,
		periodPicker:  NewPeriodPicker(),
		format:        string(export.FormatCSV),
		dir:           "./exports",
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Transactions" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return nil
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if selected, ok := msg.(PeriodSelectedMsg); ok {
		m.window = selected.Window
		m.custom = selected.Custom
		m.form = m.buildOptionsForm()
		m.state = exportStateOptions

		return m, m.form.Init()
	}

	switch m.state {
	case exportStatePeriod:
		return m.updatePeriod(msg)
	case exportStateOptions:
		return m.updateOptions(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ExportModel) updatePeriod(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.periodPicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.periodPicker, cmd = m.periodPicker.Update(msg)

	return m, cmd
}

func (m ExportModel) updateOptions(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = exportStatePeriod
			m.periodPicker.Reset()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.writtenPath = result.path
		m.writtenSize = result.size

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m *ExportModel) buildOptionsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", string(export.FormatCSV)),
					huh.NewOption("PDF", string(export.FormatPDF)),
				).
				Value(&m.format),

			huh.NewConfirm().
				Key("subcategory").
				Title("Include subcategory column?").
				Value(&m.subcategory),

			huh.NewConfirm().
				Key("payment_info").
				Title("Include payment method and reference?").
				Value(&m.paymentInfo),

			huh.NewConfirm().
				Key("raw_amounts").
				Title("Plain decimal amounts (re-importable CSV)?").
				Value(&m.rawAmounts),

			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStatePeriod:
		return lipgloss.NewStyle().Padding(1).Render(m.periodPicker.View())

	case exportStateOptions:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Rendering export...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Wrote %s (%d bytes)", m.writtenPath, m.writtenSize),
		),
	)
}

type exportResultMsg struct {
	path string
	size int
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	opts := export.Options{
		Format:             export.Format(m.format),
		Window:             m.window,
		Custom:             m.custom,
		IncludeSubcategory: m.subcategory,
		IncludePaymentInfo: m.paymentInfo,
		RawAmounts:         m.rawAmounts,
	}
	dir := m.dir

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		artifact, err := m.exportService.Export(ctx, opts)
		if err != nil {
			return exportResultMsg{err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: err}
		}

		path := filepath.Join(dir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: path, size: len(artifact.Data)}
	}
}
