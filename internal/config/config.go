// Package config loads optional user settings from config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/utils"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// defaultConfigYAML is written to config.yaml on first run
const defaultConfigYAML = `# habitrack configuration

# IANA timezone used to decide what "today" is (Local = system timezone)
timezone: Local

# Back up the database before deleting a habit
auto_backup: true

# Number of backups to keep
max_backups: 14

# Default output format for list/progress: table, json or yaml
output: table
`

// Config holds the resolved settings
type Config struct {
	Timezone   string `mapstructure:"timezone"`
	AutoBackup bool   `mapstructure:"auto_backup"`
	MaxBackups int    `mapstructure:"max_backups"`
	Output     string `mapstructure:"output"`

	// Dir is the directory config.yaml was read from
	Dir string `mapstructure:"-"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Timezone:   constants.DefaultTimezone,
		AutoBackup: constants.DefaultAutoBackup,
		MaxBackups: constants.DefaultMaxBackups,
		Output:     constants.DefaultOutput,
	}
}

// Load reads config.yaml from configDir, creating a commented default on
// first run. HABITRACK_* environment variables override file values.
func Load(configDir string) (Config, error) {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	def := Default()
	v.SetDefault(constants.SettingTimezone, def.Timezone)
	v.SetDefault(constants.SettingAutoBackup, def.AutoBackup)
	v.SetDefault(constants.SettingMaxBackups, def.MaxBackups)
	v.SetDefault(constants.SettingOutput, def.Output)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = configDir

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unusable settings
func (c Config) Validate() error {
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config %s: %w", constants.SettingTimezone, err)
	}
	if c.MaxBackups < 1 {
		return fmt.Errorf("config %s: must be at least 1, got %d", constants.SettingMaxBackups, c.MaxBackups)
	}
	if err := ValidateOutput(c.Output); err != nil {
		return fmt.Errorf("config %s: %w", constants.SettingOutput, err)
	}
	return nil
}

// ValidateOutput checks an output format name
func ValidateOutput(format string) error {
	switch strings.ToLower(format) {
	case constants.OutputTable, constants.OutputJSON, constants.OutputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
}

// ensureDefaultConfigFile writes config.yaml if it does not exist yet
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o600)
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
