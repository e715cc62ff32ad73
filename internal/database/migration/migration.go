package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_foods",
		SQL: `CREATE TABLE IF NOT EXISTS foods (
  id                   BIGINT           PRIMARY KEY,
  author_id            BIGINT           NOT NULL,
  title                TEXT             NOT NULL,
  description          TEXT             NOT NULL DEFAULT '',
  includes_vegetarian  BOOLEAN          NOT NULL DEFAULT false,
  need_tableware       BOOLEAN          NOT NULL DEFAULT false,
  tags                 BIGINT[]         NOT NULL DEFAULT '{}',
  latitude             DOUBLE PRECISION NOT NULL,
  longitude            DOUBLE PRECISION NOT NULL,
  location_description TEXT             NOT NULL DEFAULT '',
  validity_period      DOUBLE PRECISION NOT NULL,
  image_count          INTEGER          NOT NULL DEFAULT 0 CHECK (image_count >= 0),
  created_at           BIGINT           NOT NULL
);`,
	},
	{
		Name: "create_index_foods_author_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_foods_author_id ON foods (author_id);`,
	},
	{
		Name: "create_index_foods_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_foods_created_at ON foods (created_at);`,
	},
	{
		Name: "create_table_food_images",
		SQL: `CREATE TABLE IF NOT EXISTS food_images (
  food_id      BIGINT  NOT NULL REFERENCES foods (id) ON DELETE CASCADE,
  idx          INTEGER NOT NULL CHECK (idx >= 0),
  storage_key  TEXT    NOT NULL UNIQUE,
  content_type TEXT    NOT NULL,
  PRIMARY KEY (food_id, idx)
);`,
	},
	{
		Name: "create_table_orders",
		SQL: `CREATE TABLE IF NOT EXISTS orders (
  id       BIGINT  PRIMARY KEY,
  food_id  BIGINT  NOT NULL REFERENCES foods (id) ON DELETE CASCADE,
  user_id  BIGINT  NOT NULL,
  received BOOLEAN NOT NULL DEFAULT false,
  complete BOOLEAN NOT NULL DEFAULT false,
  CONSTRAINT uq_orders_food_user UNIQUE (food_id, user_id)
);`,
	},
	{
		Name: "create_index_orders_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id);`,
	},
	{
		Name: "create_table_avatars",
		SQL: `CREATE TABLE IF NOT EXISTS avatars (
  user_id      BIGINT      PRIMARY KEY,
  content_type TEXT        NOT NULL,
  storage_key  TEXT        NOT NULL,
  updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// sentinel is the table created by the last step.
const sentinel = "public.avatars"

// EnsureMigrated runs every step unless the sentinel table already exists.
// Steps are idempotent so an interrupted run can simply be repeated.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *logrus.Logger, dbHost string) error {
	start := time.Now()
	log := logger.WithFields(logrus.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinel).Scan(&exists); err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithField("event", "db_migration_start").Info("applying migrations")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"steps":       len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("migration complete")

	return nil
}
