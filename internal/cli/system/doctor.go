package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable
	needsDB bool
	// warnOnly failures do not fail the run
	warnOnly bool
	fn       func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, fn: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, fn: checkMigrationsComplete},
	{name: "Habit records", needsDB: true, fn: checkHabitRecords},
	{name: "Backups present", warnOnly: true, fn: checkBackupsPresent},
	{name: "Clock/timezone", fn: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.fn(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func sqliteStore(ctx *cli.Context) (*sqlite.Store, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("unsupported storage backend %T", ctx.Store)
	}
	if store.GetDB() == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return store, nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	store, err := sqliteStore(ctx)
	if err != nil {
		return err
	}
	var result int
	if err := store.GetDB().QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, err := sqliteStore(ctx)
	if err != nil {
		return err
	}
	runner, err := store.Migrations()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, err := sqliteStore(ctx)
	if err != nil {
		return err
	}
	runner, err := store.Migrations()
	if err != nil {
		return err
	}

	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(pending) > 0 {
		return fmt.Errorf("migrations incomplete: %d pending, run 'habitrack init'", len(pending))
	}

	exists, err := store.HabitsTableExists()
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("habits table is missing")
	}
	return nil
}

// checkHabitRecords decodes every row, catching unreadable completion dates
func checkHabitRecords(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}

	today := ctx.Store.Today()
	for _, h := range habits {
		if h.Name == "" {
			return fmt.Errorf("habit %d has an empty name", h.ID)
		}
		if err := checkCompletions(h, today); err != nil {
			return err
		}
	}
	return nil
}

func checkCompletions(h models.Habit, today time.Time) error {
	for _, d := range h.CompletedDates.Dates() {
		if d.After(today) {
			return fmt.Errorf("habit %d has a completion in the future: %s", h.ID, utils.FormatDate(d))
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'habitrack backup create'")
	}

	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if _, err := utils.LoadLocation(ctx.Config.Timezone); err != nil {
		return err
	}

	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
