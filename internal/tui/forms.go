package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// newHabitForm asks for a habit name. Emptiness is checked by the store so
// the user sees the same validation error as on the command line.
func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name),
		),
	).WithTheme(huh.ThemeDracula())
}

func newDeleteForm(fm *DeleteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete habit #%d %q?", fm.ID, fm.Name)).
				Description("Its completion history is removed too.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&fm.Confirm),
		),
	).WithTheme(huh.ThemeDracula())
}
