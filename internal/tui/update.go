package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitflow/internal/calendar"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateCalendar:
			return m.updateCalendar(msg)
		case StateAddHabit:
			return m.updateAddHabit(msg)
		case StateConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
	}

	if m.state == StateAddHabit && m.form != nil {
		return m.updateAddHabit(msg)
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		if len(m.habitList) > 0 {
			m.habitIndex = (m.habitIndex + 1) % len(m.habitList)
			m.reloadMonth()
		}

	case key.Matches(msg, m.keys.ShiftTab):
		if len(m.habitList) > 0 {
			m.habitIndex = (m.habitIndex - 1 + len(m.habitList)) % len(m.habitList)
			m.reloadMonth()
		}

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PrevMonth):
		m.year, m.month = calendar.PreviousMonth(m.year, m.month)
		m.clampCursor()
		m.reloadMonth()

	case key.Matches(msg, m.keys.NextMonth):
		m.year, m.month = calendar.NextMonth(m.year, m.month)
		m.clampCursor()
		m.reloadMonth()

	case key.Matches(msg, m.keys.Today):
		today := m.clock.Today()
		if t, err := utils.ParseDate(today); err == nil {
			m.year, m.month = t.Year(), t.Month()
			m.cursor = today
			m.reloadMonth()
		}

	case key.Matches(msg, m.keys.Enter):
		m.toggleSuccess()
	case key.Matches(msg, m.keys.Mark):
		m.setCursorStatus(models.StatusSuccess)
	case key.Matches(msg, m.keys.Fail):
		m.setCursorStatus(models.StatusFailure)
	case key.Matches(msg, m.keys.Unmark):
		m.setCursorStatus(models.StatusUnmarked)

	case key.Matches(msg, m.keys.Add):
		m.state = StateAddHabit
		m.newHabitForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		if habit, ok := m.activeHabit(); ok {
			m.habitToDeleteID = habit.ID
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		habit, err := m.service.CreateHabit(m.habitForm.Name, m.habitForm.Icon, m.habitForm.Color)
		if err != nil {
			m.statusMsg = fmt.Sprintf("failed to add habit: %v", err)
		} else {
			m.statusMsg = fmt.Sprintf("added habit %q", habit.Name)
			m.reloadHabits()
			for i, h := range m.habitList {
				if h.ID == habit.ID {
					m.habitIndex = i
					break
				}
			}
			m.reloadMonth()
		}
		m.state = StateCalendar
		m.form = nil

	case huh.StateAborted:
		m.state = StateCalendar
		m.form = nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		if err := m.service.DeleteCompletely(m.habitToDeleteID); err != nil {
			m.statusMsg = fmt.Sprintf("failed to delete habit: %v", err)
		} else {
			m.statusMsg = "habit deleted"
		}
		m.habitToDeleteID = ""
		m.state = StateCalendar
		m.reloadHabits()
		m.reloadMonth()
	case "n", "q", "esc":
		m.habitToDeleteID = ""
		m.state = StateCalendar
	}
	return m, nil
}

// moveCursor walks the cursor by days, following it across month boundaries.
func (m *Model) moveCursor(days int) {
	t, err := utils.ParseDate(m.cursor)
	if err != nil {
		return
	}
	t = t.AddDate(0, 0, days)
	m.cursor = utils.FormatDate(t)

	if t.Year() != m.year || t.Month() != m.month {
		m.year, m.month = t.Year(), t.Month()
		m.reloadMonth()
	}
}

// clampCursor keeps the cursor's day-of-month valid after a month switch.
func (m *Model) clampCursor() {
	t, err := utils.ParseDate(m.cursor)
	if err != nil {
		return
	}
	day := t.Day()
	if last := calendar.DaysInMonth(m.year, m.month); day > last {
		day = last
	}
	m.cursor = utils.FormatDate(time.Date(m.year, m.month, day, 0, 0, 0, 0, time.UTC))
}

func (m *Model) toggleSuccess() {
	if m.dayGrid[m.cursor] == models.StatusSuccess {
		m.setCursorStatus(models.StatusUnmarked)
	} else {
		m.setCursorStatus(models.StatusSuccess)
	}
}

func (m *Model) setCursorStatus(status models.DayStatus) {
	habit, ok := m.activeHabit()
	if !ok {
		return
	}

	var err error
	switch status {
	case models.StatusUnmarked:
		err = m.service.Unmark(habit.ID, m.cursor)
	case models.StatusSuccess:
		err = m.service.Mark(habit.ID, m.cursor, true)
	case models.StatusFailure:
		err = m.service.Mark(habit.ID, m.cursor, false)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to update %s: %v", m.cursor, err)
		return
	}
	m.reloadMonth()
}
