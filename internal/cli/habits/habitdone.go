package habits

import (
	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/streak"
	"github.com/julianstephens/habitrack/internal/utils"
)

type DoneCmd struct {
	ID int64 `arg:"" help:"Habit ID to mark completed for today."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	completed, err := ctx.Store.MarkCompleted(c.ID)
	if err != nil {
		return err
	}

	today := utils.FormatDate(ctx.Store.Today())
	logger.Info("Habit marked completed", "id", c.ID, "day", today)
	ctx.Printf("Marked habit #%d completed for %s (%d days, streak %d)\n",
		c.ID, today, completed.Len(), streak.FromSet(completed))
	return nil
}
