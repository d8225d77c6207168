package habits

import (
	"strconv"
	"strings"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/streak"
)

type ProgressCmd struct {
	ID     int64  `arg:"" help:"Habit ID."`
	Output string `short:"o" help:"Output format: table, json or yaml (default from config)."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	format, err := ctx.OutputFormat(c.Output)
	if err != nil {
		return err
	}

	progress, err := ctx.Store.GetProgress(c.ID)
	if err != nil {
		return err
	}
	report := streak.NewReport(progress)

	if format != constants.OutputTable {
		return cli.WriteStructured(ctx.Stdout(), format, report)
	}

	dates := "-"
	if len(report.CompletedDates) > 0 {
		dates = strings.Join(report.CompletedDates, ", ")
	}
	ctx.Println(cli.RenderTable([]string{"Habit", report.Name}, [][]string{
		{"Days Completed", strconv.Itoa(report.DaysCompleted)},
		{"Streak", strconv.Itoa(report.Streak)},
		{"Completed", dates},
	}))
	return nil
}
