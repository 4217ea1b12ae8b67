package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/calendar"
	"github.com/julianstephens/habitflow/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateAddHabit:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = m.viewCalendar()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewCalendar() string {
	habit, ok := m.activeHabit()
	if !ok {
		return "No habits yet. Press 'a' to add one."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s", habit.DisplayName(), calendar.FormatMonth(m.year, m.month))))
	b.WriteString("\n\n")
	b.WriteString(weekdayStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")

	for _, week := range calendar.MonthGrid(m.year, m.month, m.clock.Today()) {
		for _, day := range week {
			b.WriteString(m.renderDay(day))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Streak: %d day(s)    Month: %d✓ %d✗ (%d%%)",
		m.streak, m.monthSum.SuccessDays, m.monthSum.FailureDays, m.monthSum.SuccessRate))

	return b.String()
}

func (m Model) renderDay(day calendar.Day) string {
	cell := fmt.Sprintf("%3d ", day.DayOfMonth)

	if !day.InMonth {
		return outsideStyle.Render(cell)
	}

	style := lipgloss.NewStyle()
	switch m.dayGrid[day.Date] {
	case models.StatusSuccess:
		style = successStyle
	case models.StatusFailure:
		style = failureStyle
	}
	if day.Today {
		style = style.Inherit(todayStyle)
	}
	if day.Date == m.cursor {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(cell)
}

func (m Model) viewConfirmDelete() string {
	habit, _ := m.activeHabit()
	return lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render(fmt.Sprintf("Delete %q and all of its day data?", habit.Name)),
		"",
		"[y] Yes",
		"[n] No",
	)
}

func (m Model) viewStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	return statusStyle.Render(m.statusMsg)
}
