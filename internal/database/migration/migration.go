package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable marks a migrated schema.
const sentinelTable = "public.courriers"

var steps = []migrationStep{
	{
		Name: "create_table_entities",
		SQL: `CREATE TABLE IF NOT EXISTS entities (
  id           TEXT        PRIMARY KEY,
  name         TEXT        NOT NULL,
  description  TEXT        NOT NULL DEFAULT '',
  main_user_id TEXT,
  is_active    BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id         TEXT        PRIMARY KEY,
  firstname  TEXT        NOT NULL,
  lastname   TEXT        NOT NULL,
  email      TEXT        NOT NULL DEFAULT '',
  entity_id  TEXT        REFERENCES entities (id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_courriers",
		SQL: `CREATE TABLE IF NOT EXISTS courriers (
  id         TEXT        PRIMARY KEY,
  number     TEXT        NOT NULL UNIQUE,
  flow       TEXT        NOT NULL CHECK (flow IN ('entrant', 'sortant')),
  status     TEXT        NOT NULL CHECK (status IN ('in_progress', 'closed', 'archived')),
  priority   TEXT        NOT NULL,
  version    INTEGER     NOT NULL DEFAULT 1 CHECK (version > 0),
  body       JSONB       NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_table_courrier_sequences",
		SQL: `CREATE TABLE IF NOT EXISTS courrier_sequences (
  year  INTEGER PRIMARY KEY,
  value INTEGER NOT NULL CHECK (value > 0)
);`,
	},
	{
		Name: "create_index_courriers_flow_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courriers_flow_status ON courriers (flow, status);`,
	},
	{
		Name: "create_index_courriers_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courriers_created_at ON courriers (created_at);`,
	},
	{
		Name: "create_index_courriers_nodes",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_courriers_nodes ON courriers USING GIN ((body -> 'nodes') jsonb_path_ops);`,
	},
}

// EnsureMigrated creates the schema when the courriers table is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	log := logger.With("component", "database", "db_host", dbHost)

	log.Info("db_migration_check", "status", "starting")

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			"status", "success",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.Info("db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
