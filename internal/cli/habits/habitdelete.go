package habits

import (
	"fmt"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
)

type DeleteCmd struct {
	ID  int64 `arg:"" help:"Habit ID to delete."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	// Deleting a missing habit is not an error, but there is nothing to confirm either
	habit, err := ctx.Store.GetHabit(c.ID)
	if errors.IsNotFound(err) {
		ctx.Printf("No habit with ID %d, nothing to delete.\n", c.ID)
		return nil
	}
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete habit #%d %q and its history?", habit.ID, habit.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeleteHabit(c.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	logger.Info("Habit deleted", "id", habit.ID, "name", habit.Name)
	ctx.Printf("Deleted habit #%d: %s\n", habit.ID, habit.Name)
	return nil
}
