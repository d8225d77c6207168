package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitrack.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE habits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		completed_dates TEXT
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO habits (name, start_date, completed_dates) VALUES ('Read', '2025-01-01', '[]')`)
	require.NoError(t, err)

	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count))
	return count
}

// steppingClock returns a time one hour later on every call
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Hour)
		return t
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath, 0)
	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)

	assert.FileExists(t, backupPath)
	assert.Equal(t, filepath.Join(filepath.Dir(dbPath), "backups"), mgr.GetBackupDir())
	assert.Equal(t, 1, countHabits(t, backupPath))
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"), 0)
	_, err := mgr.CreateBackup()
	assert.Error(t, err)
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath, 3)
	mgr.now = steppingClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	var paths []string
	for i := 0; i < 5; i++ {
		p, err := mgr.CreateBackup()
		require.NoError(t, err)
		paths = append(paths, p)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 3)

	// newest first, oldest two removed
	assert.Equal(t, paths[4], backups[0].Path)
	assert.Equal(t, paths[2], backups[2].Path)
	assert.NoFileExists(t, paths[0])
	assert.NoFileExists(t, paths[1])
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	empty, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = mgr.CreateBackup()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "habitrack-garbage.db"), []byte("x"), 0600))

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
	assert.Positive(t, backups[0].Size)
}

func TestUniqueBackupFilenames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	fixed := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		p, err := mgr.CreateBackup()
		require.NoError(t, err)
		assert.False(t, seen[p], "duplicate backup path %s", p)
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 4)
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want time.Time
	}{
		{name: "habitrack-20250102-0304.db", ok: true, want: time.Date(2025, 1, 2, 3, 4, 0, 0, time.Local)},
		{name: "habitrack-20250102-030405.db", ok: true, want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)},
		{name: "habitrack-20250102-030405-12.db", ok: true, want: time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)},
		{name: "otherapp-20250102-0304.db", ok: false},
		{name: "habitrack-20250102-0304.sqlite", ok: false},
		{name: "habitrack-nope.db", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupName(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)
	mgr.now = steppingClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)

	// diverge the live database from the backup
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO habits (name, start_date, completed_dates) VALUES ('Walk', '2025-01-02', '[]')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Equal(t, 2, countHabits(t, dbPath))

	safety, err := mgr.RestoreBackup(backupPath)
	require.NoError(t, err)

	assert.Equal(t, 1, countHabits(t, dbPath))
	require.NotEmpty(t, safety)
	assert.Equal(t, 2, countHabits(t, safety), "pre-restore copy keeps the replaced state")
	assert.NoFileExists(t, dbPath+".restore.tmp")
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, 0)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("this is not a database file at all, not even close"), 0600))

	_, err := mgr.RestoreBackup(bogus)
	assert.Error(t, err)

	_, err = mgr.RestoreBackup(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err)

	assert.Equal(t, 1, countHabits(t, dbPath))
}
