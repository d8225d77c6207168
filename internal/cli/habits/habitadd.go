package habits

import (
	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/logger"
)

type AddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.AddHabit(c.Name)
	if err != nil {
		return err
	}

	logger.Info("Habit added", "id", habit.ID, "name", habit.Name)
	ctx.Printf("Added habit #%d: %s\n", habit.ID, habit.Name)
	return nil
}
