// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/playall/internal/formatter"
	"github.com/urfave/cli/v3"
)

// resolveCommand turns one channel reference into its uploads playlist URL
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Aliases:   []string{"r"},
		Usage:     "Generate the uploads playlist URL for a channel URL, @username, or channel ID",
		ArgsUsage: "<input>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "input",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the playlist in the default browser",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log each fallback step",
			},
		},
		Action: r.Resolve,
	}
}

// classifyCommand reports how an input is recognized without any network access
func classifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "Show how an input is recognized (offline)",
		ArgsUsage: "<input>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "input",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the classification as JSON",
			},
			&cli.BoolFlag{
				Name:  "strategies",
				Usage: "List the page extraction strategies in the order they are tried",
			},
		},
		Action: r.Classify,
	}
}

// batchCommand resolves one input per line from a file or stdin
func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Resolve many inputs, one per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "File with one input per line (- for stdin)",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: " + strings.Join(formatter.Formats(), ", "),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write results to this file instead of stdout",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Inputs started per second (0 for no pacing)",
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Inputs allowed back to back before pacing applies",
			},
		},
		Action: r.Batch,
	}
}

// relaysCommand lists configured relays
func relaysCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "relays",
		Usage: "List the configured relays in the order they are tried",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Relays,
	}
}

// setupCommand handles setup operations.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write an example configuration file to the --config path",
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand launches the interactive interface
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
