package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/calendar"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

var (
	calTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	calWeekdayStyle = lipgloss.NewStyle().Faint(true)
	calSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	calFailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	calTodayStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	calOutsideStyle = lipgloss.NewStyle().Faint(true)
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM, default current)."`
	Habit string `help:"Habit name (default: active habit)."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	year, month, err := resolveMonth(c.Month)
	if err != nil {
		return err
	}

	statuses, err := ctx.Statuses.MonthStatuses(habit.ID, year, month)
	if err != nil {
		return err
	}

	fmt.Println(RenderCalendar(habit, year, month, utils.Today(), statuses))
	return nil
}

// RenderCalendar draws a Monday-first month grid for one habit. Successes are
// shown green, failures red, and days outside the month are dimmed.
func RenderCalendar(habit models.Habit, year int, month time.Month, today string, statuses map[string]models.DayStatus) string {
	var b strings.Builder

	b.WriteString(calTitleStyle.Render(fmt.Sprintf("%s  %s", habit.DisplayName(), calendar.FormatMonth(year, month))))
	b.WriteString("\n")
	b.WriteString(calWeekdayStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))
	b.WriteString("\n")

	for _, week := range calendar.MonthGrid(year, month, today) {
		for _, day := range week {
			b.WriteString(renderDay(day, statuses))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderDay(day calendar.Day, statuses map[string]models.DayStatus) string {
	cell := fmt.Sprintf("%3d ", day.DayOfMonth)

	if !day.InMonth {
		return calOutsideStyle.Render(cell)
	}

	style := lipgloss.NewStyle()
	switch statuses[day.Date] {
	case models.StatusSuccess:
		style = calSuccessStyle
	case models.StatusFailure:
		style = calFailureStyle
	}
	if day.Today {
		style = style.Inherit(calTodayStyle)
	}
	return style.Render(cell)
}
