package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// AnalysisRunRepository defines the interface for analysis run data access
type AnalysisRunRepository interface {
	Save(ctx context.Context, run *models.AnalysisRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRun, error)
	GetLatest(ctx context.Context, name string, limit int) ([]*models.AnalysisRun, error)
}
