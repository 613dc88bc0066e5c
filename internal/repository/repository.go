package repository

import (
	"fmt"

	"github.com/yourusername/rr-analyzer/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	AnalysisRun AnalysisRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		AnalysisRun: NewPostgresAnalysisRunRepository(db),
	}, nil
}
