package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/habitrack/internal/backup"
	"github.com/julianstephens/habitrack/internal/config"
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config config.Config

	// Out and In default to stdout and stdin when nil
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

// Printf writes formatted output to the command's writer
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// BackupManager returns a backup manager for the current database
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.Store.GetConfigPath(), c.Config.MaxBackups)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.AutoBackup {
		logger.Debug("Automatic backup disabled")
		return
	}
	path, err := c.BackupManager().CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

// Confirm prints prompt and reads a y/N answer. Anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(c.Stdin())
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
