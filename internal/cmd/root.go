package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/renato0307/gitlink/internal/config"
	"github.com/renato0307/gitlink/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run      RunCmd      `cmd:"" help:"Start the gitlink TUI (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the gitlink TUI over SSH"`
	Demo     DemoCmd     `cmd:"demo" help:"Run the connect flow end to end without a terminal UI"`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta, keys)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	// CLI flags > env vars > settings.json > defaults. Env vars were already folded
	// into settings by config.Load, so a flag left at its default takes the setting.
	if c.MaxLogFiles == logging.DefaultMaxLogFiles && c.settings.MaxLogFiles != nil {
		c.MaxLogFiles = *c.settings.MaxLogFiles
	}
	if !c.Debug && c.settings.Debug != nil && *c.settings.Debug {
		c.Debug = true
	}

	if err := logging.Initialize(logging.Options{
		Debug:       c.Debug,
		DebugFile:   c.DebugFile,
		MaxLogFiles: c.MaxLogFiles,
	}); err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes (git) inherit them
	if c.Debug {
		os.Setenv("GITLINK_DEBUG", "1")
	}
	if c.DebugFile != "" {
		os.Setenv("GITLINK_DEBUG_FILE", c.DebugFile)
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("GITLINK_MAX_LOG_FILES", strconv.Itoa(c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized, GORM logs through logging.Logger
	container, err := NewContainer(context.Background(), c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
