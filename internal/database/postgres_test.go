package database

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rr-analyzer/internal/config"
)

func TestConnStringParses(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "db.internal",
		Port:     6543,
		Name:     "rr_analyzer",
		User:     "analyst",
		Password: "secret",
		SSLMode:  "require",
	}

	poolConfig, err := pgxpool.ParseConfig(ConnString(cfg))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(6543), poolConfig.ConnConfig.Port)
	assert.Equal(t, "rr_analyzer", poolConfig.ConnConfig.Database)
	assert.Equal(t, "analyst", poolConfig.ConnConfig.User)
	assert.Equal(t, "secret", poolConfig.ConnConfig.Password)
}

func TestSchemaDeclaresRunsTable(t *testing.T) {
	assert.Contains(t, Schema, "CREATE TABLE IF NOT EXISTS analysis_runs")
	assert.Contains(t, Schema, "summaries       JSONB")
}
