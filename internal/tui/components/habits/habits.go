package habits

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/streak"
	"github.com/julianstephens/habitrack/internal/utils"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID int64
}

type DeleteHabitMsg struct {
	ID   int64
	Name string
}

type ShowProgressMsg struct {
	ID int64
}

type Item struct {
	Habit    models.Habit
	IsMarked bool
	Streak   int
}

func (i Item) Title() string {
	if i.IsMarked {
		return fmt.Sprintf("✓ #%d %s", i.Habit.ID, i.Habit.Name)
	}
	return fmt.Sprintf("○ #%d %s", i.Habit.ID, i.Habit.Name)
}

func (i Item) Description() string {
	status := "not completed today"
	if i.IsMarked {
		status = "completed today"
	}
	return fmt.Sprintf("since %s · streak %d · %s", utils.FormatDate(i.Habit.StartDate), i.Streak, status)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add      key.Binding
	Mark     key.Binding
	Progress key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Progress: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "progress"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, today time.Time, width, height int) Model {
	l := list.New(items(habits, today), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Progress, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Progress, keys.Delete}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func items(habits []models.Habit, today time.Time) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{
			Habit:    h,
			IsMarked: h.CompletedDates.Contains(today),
			Streak:   streak.FromSet(h.CompletedDates),
		}
	}
	return out
}

func (m *Model) SetHabits(habits []models.Habit, today time.Time) {
	m.list.SetItems(items(habits, today))
}

// Selected returns the highlighted habit, if any
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

// Filtering reports whether the filter input has focus
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if i, ok := m.Selected(); ok && !i.IsMarked {
				return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Progress):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ShowProgressMsg{ID: i.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID, Name: i.Habit.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
