package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/cli/backups"
	"github.com/julianstephens/habitrack/internal/cli/habits"
	"github.com/julianstephens/habitrack/internal/cli/system"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" env:"HABITRACK_DB" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize habitrack storage."`
	Add      habits.AddCmd      `cmd:"" help:"Add a new habit."`
	List     habits.ListCmd     `cmd:"" help:"List habits."`
	Done     habits.DoneCmd     `cmd:"" help:"Mark a habit completed for today."`
	Progress habits.ProgressCmd `cmd:"" help:"Show a habit's progress and streak."`
	Delete   habits.DeleteCmd   `cmd:"" help:"Delete a habit and its history."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily habits and streaks"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	dbPath, err := config.ExpandPath(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	configDir := filepath.Dir(dbPath)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		RunID:     uuid.NewString()[:8],
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		errors.Fatal(err)
	}

	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	store := storage.NewSQLiteStore(dbPath, sqlite.WithLocation(loc))
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// init manages the database itself and doctor must observe it untouched.
	// Everything else creates or upgrades the schema on startup.
	command := strings.Fields(ctx.Command())[0]
	if command != "init" && command != "doctor" {
		if err := store.Init(); err != nil {
			errors.Fatal(fmt.Errorf("failed to open storage: %w", err))
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "db", dbPath, "timezone", loc.String())
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
