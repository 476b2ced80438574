package main

import (
	"context"
	"fmt"

	"uplift/internal/db"

	"github.com/urfave/cli/v2"
)

var indexesCommand = &cli.Command{
	Name:  "indexes",
	Usage: "Create the indexes the repositories rely on",
	Action: func(c *cli.Context) error {
		logger := newLogger()

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		client, database, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer client.Disconnect(ctx)

		if err := db.EnsureIndexes(ctx, database, cfg.TokenTTLSec); err != nil {
			return fmt.Errorf("failed to ensure indexes: %w", err)
		}

		logger.Info("indexes ensured")
		return nil
	},
}
