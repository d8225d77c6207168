package constants

const (
	AppName           = "habitrack"
	DefaultConfigPath = "~/.config/habitrack/habitrack.db"
	Version           = "v0.1.0"

	// DateFormat is the calendar date layout used for start and completion dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitrack-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "habitrack.log"

	// Output formats
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)
