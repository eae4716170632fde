package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// schemaStatements create the tables this service owns. They are idempotent
// and run on startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS user_favorites (
		user_id     UUID        NOT NULL,
		property_id TEXT        NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, property_id)
	)`,
	`CREATE INDEX IF NOT EXISTS user_favorites_user_created_idx
		ON user_favorites (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS catalog_raw_properties (
		id         TEXT        PRIMARY KEY,
		position   INTEGER     NOT NULL DEFAULT 0,
		data       JSONB       NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// EnsureSchema creates missing tables and indexes.
func EnsureSchema(ctx context.Context, db execer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
