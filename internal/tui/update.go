package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/streak"
	"github.com/julianstephens/habitrack/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.habitsModel.SetSize(msg.Width-4, msg.Height-8)
	}

	switch m.state {
	case constants.StateAddHabit:
		return m, m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.habitsModel.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + constants.TabCount) % constants.TabCount
			return m, nil
		case key.Matches(msg, m.keys.Back) && m.state == constants.StateProgress:
			m.state = constants.StateHabits
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.state == constants.StateHabits {
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

// handleHabitMessages handles messages from the habits component
func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case habits.MarkHabitMsg:
		m.markHabit(msg.ID)
		return true, nil

	case habits.ShowProgressMsg:
		m.showProgress(msg.ID)
		return true, nil

	case habits.DeleteHabitMsg:
		m.deleteForm = &DeleteFormModel{ID: msg.ID, Name: msg.Name}
		m.form = newDeleteForm(m.deleteForm)
		m.state = constants.StateConfirmDelete
		return true, m.form.Init()
	}
	return false, nil
}

// updateForm forwards msg to the active form. Esc aborts it.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m *Model) updateAddHabit(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		m.addHabit(m.habitForm.Name)
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		if m.deleteForm.Confirm {
			m.deleteHabit(m.deleteForm.ID, m.deleteForm.Name)
		} else {
			m.setStatus("Delete cancelled")
		}
		m.closeForm()
	case huh.StateAborted:
		m.setStatus("Delete cancelled")
		m.closeForm()
	}
	return cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.deleteForm = nil
	m.state = constants.StateHabits
}

func (m *Model) addHabit(name string) {
	habit, err := m.store.AddHabit(name)
	if err != nil {
		m.setError(err)
		return
	}
	logger.Info("Habit added", "id", habit.ID, "name", habit.Name)
	m.setStatus(fmt.Sprintf("Added habit #%d: %s", habit.ID, habit.Name))
	m.refresh()
}

func (m *Model) markHabit(id int64) {
	completed, err := m.store.MarkCompleted(id)
	if err != nil {
		m.setError(err)
		return
	}
	logger.Info("Habit marked completed", "id", id)
	m.setStatus(fmt.Sprintf("Marked habit #%d done today (%d days, streak %d)",
		id, completed.Len(), streak.FromSet(completed)))
	m.refresh()
}

func (m *Model) showProgress(id int64) {
	progress, err := m.store.GetProgress(id)
	if err != nil {
		m.setError(err)
		return
	}
	report := streak.NewReport(progress)
	m.report = &report
	m.reportID = id
	m.state = constants.StateProgress
}

func (m *Model) deleteHabit(id int64, name string) {
	if err := m.store.DeleteHabit(id); err != nil {
		m.setError(err)
		return
	}
	logger.Info("Habit deleted", "id", id, "name", name)
	if m.report != nil && m.reportID == id {
		m.report = nil
	}
	m.setStatus(fmt.Sprintf("Deleted habit #%d: %s", id, name))
	m.refresh()
}
