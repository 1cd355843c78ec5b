package main

import (
	"context"

	"github.com/desertthunder/playall/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to the --config path.
//
// An existing file is never overwritten.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	r.logger.Info("creating config file from template", "path", configPath)
	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.writePlain("✓ Config file written to %s\n", configPath)
	r.writePlainln("Edit [[fetcher.relays]] to change the relay order or add your own relay.")
	return nil
}
