package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/rr-analyzer/internal/database"
	"github.com/yourusername/rr-analyzer/internal/models"
)

const (
	errScanAnalysisRun = "failed to scan analysis run: %w"

	analysisRunColumns = `id, name, teams, schedule_count, pair_count, violation_count,
		summaries, started_at, completed_at, created_at`
)

// PostgresAnalysisRunRepository implements AnalysisRunRepository for PostgreSQL
type PostgresAnalysisRunRepository struct {
	db *database.DB
}

// NewPostgresAnalysisRunRepository creates a new analysis run repository
func NewPostgresAnalysisRunRepository(db *database.DB) AnalysisRunRepository {
	return &PostgresAnalysisRunRepository{db: db}
}

// Save inserts an analysis run, assigning an ID and creation time when unset
func (r *PostgresAnalysisRunRepository) Save(ctx context.Context, run *models.AnalysisRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO analysis_runs (` + analysisRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		run.ID, run.Name, run.Teams, run.ScheduleCount, run.PairCount, run.ViolationCount,
		run.Summaries, run.StartedAt, run.CompletedAt, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves an analysis run by ID
func (r *PostgresAnalysisRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRun, error) {
	query := `SELECT ` + analysisRunColumns + ` FROM analysis_runs WHERE id = $1`

	run, err := scanAnalysisRun(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatest retrieves the most recent runs, optionally filtered by name
func (r *PostgresAnalysisRunRepository) GetLatest(ctx context.Context, name string, limit int) ([]*models.AnalysisRun, error) {
	query := `
		SELECT ` + analysisRunColumns + `
		FROM analysis_runs
		WHERE $1 = '' OR name = $1
		ORDER BY started_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.AnalysisRun
	for rows.Next() {
		run, err := scanAnalysisRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanAnalysisRun(row pgx.Row) (*models.AnalysisRun, error) {
	run := &models.AnalysisRun{}
	if err := row.Scan(
		&run.ID, &run.Name, &run.Teams, &run.ScheduleCount, &run.PairCount, &run.ViolationCount,
		&run.Summaries, &run.StartedAt, &run.CompletedAt, &run.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf(errScanAnalysisRun, err)
	}
	return run, nil
}
