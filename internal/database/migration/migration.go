package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_floorplan_images",
		SQL: `CREATE TABLE IF NOT EXISTS floorplan_images (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name         TEXT        NOT NULL DEFAULT '',
  filename     TEXT        NOT NULL DEFAULT '',
  storage_path TEXT        NULL UNIQUE,
  external_url TEXT        NULL,
  size         BIGINT      NOT NULL DEFAULT 0 CHECK (size >= 0),
  content_type TEXT        NOT NULL DEFAULT '',
  comments     TEXT        NOT NULL DEFAULT '',
  site_id      BIGINT      NULL CHECK (site_id > 0),
  location_id  BIGINT      NULL CHECK (location_id > 0),
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT floorplan_images_single_owner CHECK (site_id IS NULL OR location_id IS NULL),
  CONSTRAINT floorplan_images_single_source CHECK ((storage_path IS NULL) <> (external_url IS NULL))
);`,
	},
	{
		Name: "create_index_floorplan_images_site_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_floorplan_images_site_id ON floorplan_images (site_id);`,
	},
	{
		Name: "create_index_floorplan_images_location_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_floorplan_images_location_id ON floorplan_images (location_id);`,
	},
	{
		Name: "create_index_floorplan_images_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_floorplan_images_created_at ON floorplan_images (created_at);`,
	},
}

// EnsureMigrated checks if the floorplan_images table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *zap.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := "SELECT to_regclass('public.floorplan_images') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.String("error_message", fmt.Sprintf("failed to check sentinel table: %v", err)),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("detail", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.String("error_message", err.Error()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}
