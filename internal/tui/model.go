package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/storage"
	"github.com/julianstephens/habitflow/internal/utils"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StateAddHabit
	StateConfirmDelete
)

type HabitFormModel struct {
	Name  string
	Icon  string
	Color string
}

type Model struct {
	service  *habits.Service
	registry *storage.HabitRegistry
	statuses *storage.DayStatusStore
	engine   *stats.Engine
	clock    utils.Clock

	state SessionState
	keys  KeyMap
	help  help.Model

	habitList  []models.Habit
	habitIndex int

	year     int
	month    time.Month
	cursor   string // date under the cursor, YYYY-MM-DD
	dayGrid  map[string]models.DayStatus
	streak   int
	monthSum models.MonthStats

	form      *huh.Form
	habitForm *HabitFormModel

	habitToDeleteID string

	statusMsg string
	quitting  bool
	width     int
	height    int
}

func NewModel(service *habits.Service, registry *storage.HabitRegistry, statuses *storage.DayStatusStore, engine *stats.Engine, clock utils.Clock) Model {
	today := clock.Today()
	t, err := utils.ParseDate(today)
	if err != nil {
		t = time.Now()
	}

	m := Model{
		service:  service,
		registry: registry,
		statuses: statuses,
		engine:   engine,
		clock:    clock,
		state:    StateCalendar,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		year:     t.Year(),
		month:    t.Month(),
		cursor:   today,
	}

	m.reloadHabits()
	m.reloadMonth()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) activeHabit() (models.Habit, bool) {
	if len(m.habitList) == 0 {
		return models.Habit{}, false
	}
	return m.habitList[m.habitIndex], true
}

// reloadHabits refreshes the active-habit tab list, keeping the selection on
// the same habit when it still exists.
func (m *Model) reloadHabits() {
	var keepID string
	if habit, ok := m.activeHabit(); ok {
		keepID = habit.ID
	}

	list, err := m.registry.Active()
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to load habits: %v", err)
		return
	}
	m.habitList = list

	m.habitIndex = 0
	for i, habit := range list {
		if habit.ID == keepID {
			m.habitIndex = i
			break
		}
	}
}

func (m *Model) reloadMonth() {
	habit, ok := m.activeHabit()
	if !ok {
		m.dayGrid = nil
		m.streak = 0
		m.monthSum = models.MonthStats{}
		return
	}

	grid, err := m.statuses.MonthStatuses(habit.ID, m.year, m.month)
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to load month: %v", err)
		return
	}
	m.dayGrid = grid

	streak, err := m.engine.Streak(habit.ID)
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to compute streak: %v", err)
		return
	}
	m.streak = streak

	sum, err := m.engine.MonthStats(habit.ID, m.year, m.month)
	if err != nil {
		m.statusMsg = fmt.Sprintf("failed to compute month stats: %v", err)
		return
	}
	m.monthSum = sum
}

func (m *Model) newHabitForm() {
	m.habitForm = &HabitFormModel{Icon: "🎯", Color: "#4CAF50"}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().Key("name").Title("Name").Value(&m.habitForm.Name),
		huh.NewInput().Key("icon").Title("Icon").Value(&m.habitForm.Icon),
		huh.NewInput().Key("color").Title("Color").Description("#RRGGBB").Value(&m.habitForm.Color),
	))
}
