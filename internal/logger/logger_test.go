package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	require.NoError(t, Init(Config{Debug: false, ConfigDir: configDir}))
	require.NotNil(t, Logger)

	logDir := filepath.Join(configDir, "logs")
	assert.DirExists(t, logDir)

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "habit_id", 1)
	Error("Test error message")

	data, err := os.ReadFile(filepath.Join(logDir, "habitrack.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Test warning message")
	assert.Contains(t, string(data), "Test error message")
	// below the warn threshold outside debug mode
	assert.NotContains(t, string(data), "Test debug message")
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	require.NoError(t, Init(Config{Debug: true, ConfigDir: configDir}))
	require.NotNil(t, Logger)

	Debug("Test debug message in debug mode")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "habitrack.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Test debug message in debug mode")
}

func TestInitRunID(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	require.NoError(t, Init(Config{ConfigDir: configDir, RunID: "3f2a9c1e"}))
	Warn("tagged message")

	data, err := os.ReadFile(filepath.Join(configDir, "logs", "habitrack.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run=3f2a9c1e")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	assert.NotPanics(t, func() {
		Debug("Test debug message")
		Info("Test info message")
		Warn("Test warning message")
		Error("Test error message")
	})
}
