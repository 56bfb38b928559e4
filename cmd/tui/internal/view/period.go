package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwarren-dev/finsight/internal/period"
)

// windowOptions is the picker order, top to bottom.
var windowOptions = []period.Window{
	period.WindowLast7Days,
	period.WindowLast30Days,
	period.WindowLast90Days,
	period.WindowLastYear,
	period.WindowAll,
	period.WindowCustom,
}

func windowLabel(w period.Window) string {
	switch w {
	case period.WindowLast7Days:
		return "Last 7 Days"
	case period.WindowLast30Days:
		return "Last 30 Days"
	case period.WindowLast90Days:
		return "Last 90 Days"
	case period.WindowLastYear:
		return "Last Year"
	case period.WindowAll:
		return "All Time"
	case period.WindowCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// PeriodSelectedMsg is emitted when the user has selected a valid period.
// Custom is nil for the predefined windows.
type PeriodSelectedMsg struct {
	Window period.Window
	Custom *period.Range
}

type periodState int

const (
	periodStateSelect periodState = iota
	periodStateCustom
)

// PeriodPicker is a reusable component for selecting a reporting period.
type PeriodPicker struct {
	state    periodState
	selected int

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker() PeriodPicker {
	si := textinput.New()
	si.Placeholder = "YYYY-MM-DD"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Start Date: "

	ei := textinput.New()
	ei.Placeholder = "YYYY-MM-DD"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "End Date:   "

	return PeriodPicker{
		state:      periodStateSelect,
		startInput: si,
		endInput:   ei,
	}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case periodStateSelect:
			return m.updateSelect(msg)
		case periodStateCustom:
			return m.updateCustom(msg)
		}
	}

	if m.state == periodStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(windowOptions)-1 {
			m.selected++
		}
	case tea.KeyEnter:
		window := windowOptions[m.selected]

		if window == period.WindowCustom {
			m.state = periodStateCustom
			m.startInput.Focus()
			m.focusIndex = 0

			return m, textinput.Blink
		}

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Window: window}
		}
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink
		}

		m.endInput.Focus()

		return m, textinput.Blink

	case "enter":
		start, err := time.Parse("2006-01-02", m.startInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid start date (YYYY-MM-DD)")
			return m, nil
		}

		end, err := time.Parse("2006-01-02", m.endInput.Value())
		if err != nil {
			m.err = fmt.Errorf("invalid end date (YYYY-MM-DD)")
			return m, nil
		}

		if end.Before(start) {
			m.err = fmt.Errorf("end date is before start date")
			return m, nil
		}

		m.err = nil
		// Make the end bound cover the whole final day.
		end = end.Add(24*time.Hour - time.Second)

		return m, func() tea.Msg {
			return PeriodSelectedMsg{
				Window: period.WindowCustom,
				Custom: &period.Range{Start: start, End: end},
			}
		}

	case "esc":
		m.state = periodStateSelect
		m.err = nil

		return m, nil
	}

	return m, nil
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var cmds []tea.Cmd

	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == periodStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Select Period:\n\n"

	for i, w := range windowOptions {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, windowLabel(w))
	}

	s += "\n(Enter to select, Esc to back)"

	return s + errStr
}

// IsSelecting returns true if the picker is in the selection state.
func (m PeriodPicker) IsSelecting() bool {
	return m.state == periodStateSelect
}

// Reset returns the picker to its initial selection state.
func (m *PeriodPicker) Reset() {
	m.state = periodStateSelect
	m.selected = 0
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
