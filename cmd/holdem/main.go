package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel string           `help:"Log level (debug, info, warn, error); overrides the config file" env:"HOLDEM_LOG_LEVEL"`

	Serve    ServeCmd    `cmd:"" help:"Run the table server"`
	Simulate SimulateCmd `cmd:"" help:"Play bot-only tables and report results"`
	Eval     EvalCmd     `cmd:"" help:"Evaluate a hand, or compare hands on a board"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-limit Texas Hold'em tables with bots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

// newLogger builds the process logger. An empty level falls back to
// fallback.
func newLogger(level, fallback string) (*log.Logger, error) {
	if level == "" {
		level = fallback
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	}), nil
}
