package habits

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/cli"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/errors"
	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/storage"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/streak"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "habitrack.db"),
		sqlite.WithClock(clock.Now),
		sqlite.WithLocation(time.UTC),
	)
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:  store,
		Config: config.Default(),
		Out:    out,
		In:     strings.NewReader(""),
	}
	return ctx, out, clock
}

func TestAddCmd(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	require.NoError(t, (&AddCmd{Name: "  Read  "}).Run(ctx))
	assert.Equal(t, "Added habit #1: Read\n", out.String())

	habits, err := ctx.Store.ListHabits()
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Read", habits[0].Name)
}

func TestAddCmd_EmptyName(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	err := (&AddCmd{Name: "   "}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, out.String())

	habits, err := ctx.Store.ListHabits()
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestListCmd_Empty(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	require.NoError(t, (&ListCmd{}).Run(ctx))
	assert.Equal(t, "No habits found.\n", out.String())
}

func TestListCmd_Table(t *testing.T) {
	ctx, out, _ := setupTestContext(t)
	_, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)
	_, err = ctx.Store.AddHabit("Run")
	require.NoError(t, err)

	require.NoError(t, (&ListCmd{}).Run(ctx))
	text := out.String()
	assert.Contains(t, text, "Read")
	assert.Contains(t, text, "Run")
	assert.Contains(t, text, "2025-03-10")
	assert.Less(t, strings.Index(text, "Read"), strings.Index(text, "Run"))
}

func TestListCmd_JSON(t *testing.T) {
	ctx, out, _ := setupTestContext(t)
	_, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)

	require.NoError(t, (&ListCmd{Output: "json"}).Run(ctx))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Read", got[0]["name"])
	assert.EqualValues(t, 1, got[0]["id"])
}

func TestListCmd_EmptyJSONIsArray(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	require.NoError(t, (&ListCmd{Output: "json"}).Run(ctx))
	assert.Equal(t, "[]\n", out.String())
}

func TestListCmd_ConfigDefaultFormat(t *testing.T) {
	ctx, out, _ := setupTestContext(t)
	ctx.Config.Output = "yaml"
	_, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)

	require.NoError(t, (&ListCmd{}).Run(ctx))

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Read", got[0]["name"])
}

func TestListCmd_InvalidFormat(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	err := (&ListCmd{Output: "xml"}).Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestDoneCmd(t *testing.T) {
	ctx, out, clock := setupTestContext(t)
	habit, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)

	require.NoError(t, (&DoneCmd{ID: habit.ID}).Run(ctx))
	assert.Contains(t, out.String(), "2025-03-10 (1 days, streak 1)")

	// Marking twice on the same day changes nothing
	out.Reset()
	require.NoError(t, (&DoneCmd{ID: habit.ID}).Run(ctx))
	assert.Contains(t, out.String(), "(1 days, streak 1)")

	clock.now = clock.now.AddDate(0, 0, 1)
	out.Reset()
	require.NoError(t, (&DoneCmd{ID: habit.ID}).Run(ctx))
	assert.Contains(t, out.String(), "2025-03-11 (2 days, streak 2)")
}

func TestDoneCmd_NotFound(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	err := (&DoneCmd{ID: 42}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestProgressCmd_Table(t *testing.T) {
	ctx, out, clock := setupTestContext(t)
	habit, err := ctx.Store.AddHabit("Meditate")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := ctx.Store.MarkCompleted(habit.ID)
		require.NoError(t, err)
		clock.now = clock.now.AddDate(0, 0, 1)
	}

	require.NoError(t, (&ProgressCmd{ID: habit.ID}).Run(ctx))
	text := out.String()
	assert.Contains(t, text, "Meditate")
	assert.Contains(t, text, "Days Completed")
	assert.Contains(t, text, "2025-03-10, 2025-03-11, 2025-03-12")
}

func TestProgressCmd_JSON(t *testing.T) {
	ctx, out, clock := setupTestContext(t)
	habit, err := ctx.Store.AddHabit("Meditate")
	require.NoError(t, err)

	// Two days, a gap, then one day: trailing streak is 1
	for _, advance := range []int{0, 1, 3} {
		clock.now = clock.now.AddDate(0, 0, advance)
		_, err := ctx.Store.MarkCompleted(habit.ID)
		require.NoError(t, err)
	}

	require.NoError(t, (&ProgressCmd{ID: habit.ID, Output: "JSON"}).Run(ctx))

	var report streak.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "Meditate", report.Name)
	assert.Equal(t, 3, report.DaysCompleted)
	assert.Equal(t, 1, report.Streak)
}

func TestProgressCmd_NotFound(t *testing.T) {
	ctx, _, _ := setupTestContext(t)

	err := (&ProgressCmd{ID: 7}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteCmd_WithYes(t *testing.T) {
	ctx, out, _ := setupTestContext(t)
	habit, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)

	require.NoError(t, (&DeleteCmd{ID: habit.ID, Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "Deleted habit #1: Read")

	_, err = ctx.Store.GetProgress(habit.ID)
	assert.True(t, errors.IsNotFound(err))

	// auto_backup is on by default, so a backup was taken first
	backups, err := ctx.BackupManager().ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestDeleteCmd_NoAutoBackup(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	ctx.Config.AutoBackup = false
	habit, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)

	require.NoError(t, (&DeleteCmd{ID: habit.ID, Yes: true}).Run(ctx))

	_, err = os.Stat(backup.NewManager(ctx.Store.GetConfigPath(), 1).GetBackupDir())
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteCmd_Confirmation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		deleted bool
	}{
		{name: "yes", input: "y\n", deleted: true},
		{name: "full yes", input: "YES\n", deleted: true},
		{name: "no", input: "n\n", deleted: false},
		{name: "empty", input: "\n", deleted: false},
		{name: "eof", input: "", deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := setupTestContext(t)
			ctx.In = strings.NewReader(tt.input)
			habit, err := ctx.Store.AddHabit("Read")
			require.NoError(t, err)

			require.NoError(t, (&DeleteCmd{ID: habit.ID}).Run(ctx))

			_, err = ctx.Store.GetHabit(habit.ID)
			if tt.deleted {
				assert.True(t, errors.IsNotFound(err))
			} else {
				require.NoError(t, err)
				assert.Contains(t, out.String(), "Delete cancelled.")
			}
		})
	}
}

func TestDeleteCmd_MissingIsNotAnError(t *testing.T) {
	ctx, out, _ := setupTestContext(t)

	require.NoError(t, (&DeleteCmd{ID: 99, Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "nothing to delete")
}

func TestDeleteCmd_OtherHabitsUntouched(t *testing.T) {
	ctx, _, _ := setupTestContext(t)
	first, err := ctx.Store.AddHabit("Read")
	require.NoError(t, err)
	second, err := ctx.Store.AddHabit("Run")
	require.NoError(t, err)
	_, err = ctx.Store.MarkCompleted(second.ID)
	require.NoError(t, err)

	require.NoError(t, (&DeleteCmd{ID: first.ID, Yes: true}).Run(ctx))

	progress, err := ctx.Store.GetProgress(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Progress{
		Name:           "Run",
		CompletedDates: models.NewCompletionSet(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}, progress)
}
