package database

import (
	"context"
	"fmt"

	"github.com/yourusername/rr-analyzer/internal/config"
)

// Schema creates the tables used by the analysis run repository
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id              UUID PRIMARY KEY,
	name            TEXT        NOT NULL,
	teams           INTEGER     NOT NULL,
	schedule_count  INTEGER     NOT NULL,
	pair_count      INTEGER     NOT NULL,
	violation_count INTEGER     NOT NULL,
	summaries       JSONB       NOT NULL,
	started_at      TIMESTAMPTZ NOT NULL,
	completed_at    TIMESTAMPTZ NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analysis_runs_name_started_idx ON analysis_runs (name, started_at DESC);
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
