package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitrack/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case constants.StateProgress:
		content = docStyle.Render(m.viewProgress())
	case constants.StateAddHabit, constants.StateConfirmDelete:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Progress"} {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewProgress() string {
	if m.report == nil {
		return "Select a habit and press 'p' to see its progress."
	}

	dates := "none yet"
	if len(m.report.CompletedDates) > 0 {
		dates = strings.Join(m.report.CompletedDates, ", ")
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		row("Habit", m.report.Name),
		row("Days Completed", strconv.Itoa(m.report.DaysCompleted)),
		row("Streak", strconv.Itoa(m.report.Streak)),
		row("Completed", dates),
	)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("Error: " + m.status)
	}
	return statusStyle.Render(m.status)
}
