package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"spotsearch/internal/shared"
	"spotsearch/internal/store"
)

// SetupConfig writes the example configuration file for the user to fill in.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("configuration file created", "path", path)
	r.writePlain("✓ Wrote %s\n", path)
	return r.writePlain("Fill in your Spotify client credentials before running other commands.\n")
}

// SetupDatabase initializes the credential database at the configured path.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Database.Path

	s, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer s.Close()

	r.logger.Info("database initialized", "path", path)
	return r.writePlain("✓ Database ready at %s\n", path)
}
