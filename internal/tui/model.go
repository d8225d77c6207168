package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/streak"
	"github.com/julianstephens/habitrack/internal/tui/components/habits"
)

type HabitFormModel struct {
	Name string
}

type DeleteFormModel struct {
	ID      int64
	Name    string
	Confirm bool
}

type Model struct {
	store       storage.Provider
	state       constants.SessionState
	keys        KeyMap
	help        help.Model
	habitsModel habits.Model
	form        *huh.Form
	habitForm   *HabitFormModel
	deleteForm  *DeleteFormModel
	report      *streak.Report
	reportID    int64
	status      string
	statusErr   bool
	quitting    bool
	width       int
	height      int
}

func NewModel(store storage.Provider) Model {
	m := Model{
		store:       store,
		state:       constants.StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, store.Today(), 0, 0),
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == constants.StateHabits {
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Mark, hk.Progress, hk.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	hk := habits.DefaultKeyMap()
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Back},
		{hk.Add, hk.Mark, hk.Progress, hk.Delete},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the habit list from the store
func (m *Model) refresh() {
	all, err := m.store.GetAllHabits()
	if err != nil {
		logger.Error("Failed to load habits", "error", err)
		m.setError(err)
		return
	}
	m.habitsModel.SetHabits(all, m.store.Today())
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}
