package constants

const (
	// Config keys
	SettingTimezone   = "timezone"
	SettingAutoBackup = "auto_backup"
	SettingMaxBackups = "max_backups"
	SettingOutput     = "output"

	// EnvPrefix namespaces environment overrides, e.g. HABITRACK_TIMEZONE
	EnvPrefix = "HABITRACK"

	// Default config values
	DefaultTimezone   = "Local" // Use system local timezone by default
	DefaultAutoBackup = true
	DefaultMaxBackups = MaxBackups
	DefaultOutput     = OutputTable
)
