package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/factpress/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate new posts and rebuild the index pages and feed"`
	Render   RenderCmd   `cmd:"" help:"Rebuild index pages and feed from the post index"`
	Verify   VerifyCmd   `cmd:"" help:"Check the generated site for broken internal links"`
	Schedule ScheduleCmd `cmd:"" help:"Run generate on a cron schedule until interrupted"`
	Init     InitCmd     `cmd:"" help:"Write a starter config, templates, seed topics and stylesheet"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(config.NewLogger(os.Stderr, config.LogLevelInfo, config.LogFormatText, c.Verbose))
	return nil
}

// loadConfig reads the config file and swaps the default logger for one that
// honours log_level and log_format.
func (c *CLI) loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, nil, err
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat, c.Verbose)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
