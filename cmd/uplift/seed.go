package main

import (
	"context"
	"fmt"

	"uplift/internal/db"
	"uplift/internal/seed"
	"uplift/internal/store"

	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with fixture data",
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

		logger.Info("connected to database")

		if err := db.EnsureIndexes(ctx, database, cfg.TokenTTLSec); err != nil {
			return fmt.Errorf("failed to ensure indexes: %w", err)
		}

		seeder := seed.New(
			logger,
			store.NewUserRepository(database),
			store.NewProjectRepository(database),
			store.NewNeedRepository(database),
			store.NewParticipationRepository(database),
			store.NewSchoolRepository(database),
		)

		return seeder.Run(ctx, cfg)
	},
}
