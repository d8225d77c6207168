package habits

import (
	"strconv"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/utils"
)

type ListCmd struct {
	Output string `short:"o" help:"Output format: table, json or yaml (default from config)."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	format, err := ctx.OutputFormat(c.Output)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}
	if habits == nil {
		habits = []models.HabitSummary{}
	}

	if format != constants.OutputTable {
		return cli.WriteStructured(ctx.Stdout(), format, habits)
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			strconv.FormatInt(h.ID, 10),
			h.Name,
			utils.FormatDate(h.StartDate),
		})
	}
	ctx.Println(cli.RenderTable([]string{"ID", "Name", "Started"}, rows))
	return nil
}
