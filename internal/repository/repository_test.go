package repository

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rr-analyzer/internal/config"
	"github.com/yourusername/rr-analyzer/internal/database"
	"github.com/yourusername/rr-analyzer/internal/models"
)

const skipIntegrationMsg = "Integration test - set RR_ANALYZER_INTEGRATION=1 and RR_ANALYZER_DATABASE_* to run"

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	if os.Getenv("RR_ANALYZER_INTEGRATION") == "" {
		t.Skip(skipIntegrationMsg)
	}

	cfg, err := config.LoadWithDefaults("")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	repos, err := NewRepositories(nil)
	assert.Error(t, err)
	assert.Nil(t, repos)
}

// TestAnalysisRunRoundTrip tests saving and reloading an analysis run
func TestAnalysisRunRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	name := "it-" + uuid.NewString()
	started := time.Now().UTC().Truncate(time.Millisecond)
	run := &models.AnalysisRun{
		Name:          name,
		Teams:         4,
		ScheduleCount: 3,
		PairCount:     3,
		Summaries:     json.RawMessage(`[{"metric":"raw"}]`),
		StartedAt:     started,
		CompletedAt:   started.Add(time.Second),
	}
	require.NoError(t, repos.AnalysisRun.Save(ctx, run))
	assert.NotEqual(t, uuid.Nil, run.ID)

	retrieved, err := repos.AnalysisRun.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, name, retrieved.Name)
	assert.Equal(t, 3, retrieved.PairCount)
	assert.JSONEq(t, `[{"metric":"raw"}]`, string(retrieved.Summaries))

	latest, err := repos.AnalysisRun.GetLatest(ctx, name, 10)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, run.ID, latest[0].ID)

	_, err = repos.AnalysisRun.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
