package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AnalysisRun is one persisted execution of the analysis pipeline
type AnalysisRun struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Teams          int             `json:"teams" db:"teams"`
	ScheduleCount  int             `json:"schedule_count" db:"schedule_count"`
	PairCount      int             `json:"pair_count" db:"pair_count"`
	ViolationCount int             `json:"violation_count" db:"violation_count"`
	Summaries      json.RawMessage `json:"summaries" db:"summaries"`
	StartedAt      time.Time       `json:"started_at" db:"started_at"`
	CompletedAt    time.Time       `json:"completed_at" db:"completed_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
