package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/playall/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatal(err.Error())
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playall",
		Usage:   "Turn a YouTube channel into its uploads playlist URL",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Before:   r.loadConfig,
		Commands: r.register(),
	}
}

// loadConfig reads the --config file when it exists and applies its log level.
//
// A missing file keeps the built-in defaults.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, fmt.Errorf("%s: %w", path, err)
		}
		r.configure(config)
		r.logger.Debug("loaded config", "path", path)
	} else {
		r.logger.Debug("config file not found, using defaults", "path", path)
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	lvl, err := shared.ParseLogLevel(level)
	if err != nil {
		return ctx, fmt.Errorf("%w: --log-level %q", shared.ErrInvalidFlag, level)
	}
	shared.SetLogLevel(r.logger, lvl)
	return ctx, nil
}
