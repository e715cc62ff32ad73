package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"foodhood/internal/config"
	"foodhood/internal/database"
	"foodhood/internal/database/migration"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create the database schema if it does not exist",
	Action: func(cCtx *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}

		db, err := database.NewPostgres(cCtx.Context, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		return migration.EnsureMigrated(cCtx.Context, db, logger, cfg.Database.Host)
	},
}
