// Package analysis runs the schedule verification, divergence and fitting pipeline.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rr-analyzer/internal/cache"
	"github.com/yourusername/rr-analyzer/internal/divergence"
	"github.com/yourusername/rr-analyzer/internal/logger"
	"github.com/yourusername/rr-analyzer/internal/metrics"
	"github.com/yourusername/rr-analyzer/internal/models"
	"github.com/yourusername/rr-analyzer/internal/report"
	"github.com/yourusername/rr-analyzer/internal/repository"
	"github.com/yourusername/rr-analyzer/internal/schedule"
	"github.com/yourusername/rr-analyzer/internal/verifier"
)

// ErrTooFewSchedules is returned when there is no pair of schedules to compare
var ErrTooFewSchedules = errors.New("at least two schedules are required")

// Result holds everything one pipeline run produced
type Result struct {
	Run         *models.AnalysisRun
	Violations  []models.Violation
	Pairs       []models.PairDifference
	Streams     models.DifferenceStreams
	StreamPaths map[models.DifferenceMetric]string
	Summaries   []models.MetricSummary
	Report      report.Report
}

// Service runs the analysis pipeline
type Service struct {
	runs  repository.AnalysisRunRepository
	cache *cache.FitCache
	log   *logger.AnalysisLogger
	vlog  *logger.VerifierLogger
	now   func() time.Time
}

// NewService creates a new analysis service. runs and fitCache may be nil to
// disable persistence and fit reuse.
func NewService(runs repository.AnalysisRunRepository, fitCache *cache.FitCache, log *logrus.Logger) *Service {
	return &Service{
		runs:  runs,
		cache: fitCache,
		log:   logger.NewAnalysisLogger(log),
		vlog:  logger.NewVerifierLogger(log),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Verify checks every schedule against a fresh pool of all n(n-1) ordered
// matchups and returns the violations in schedule order
func (s *Service) Verify(n int, schedules []models.Schedule) []models.Violation {
	var all []models.Violation
	for idx, sched := range schedules {
		matchups := sched.Flatten()
		violations := verifier.VerifySchedule(n, matchups, verifier.NewFullPool(n), idx)
		for _, v := range violations {
			s.vlog.LogViolation(v)
		}
		s.vlog.LogScheduleVerified(idx, len(matchups), len(violations))

		counts := make(map[string]int)
		for kind, count := range verifier.CountByKind(violations) {
			counts[string(kind)] = count
		}
		metrics.RecordScheduleVerified(counts)

		all = append(all, violations...)
	}
	return all
}

// Compare computes the pairwise differences of all schedules
func (s *Service) Compare(ctx context.Context, schedules []models.Schedule, opts Options) ([]models.PairDifference, error) {
	start := time.Now()

	var pairs []models.PairDifference
	if opts.Parallel {
		var err error
		pairs, err = divergence.CompareAllParallel(ctx, schedules, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("failed to compare schedules: %w", err)
		}
	} else {
		pairs = divergence.CompareAll(schedules)
	}

	metrics.RecordPairsCompared(len(pairs))
	s.log.LogPairsCompared(len(pairs), time.Since(start))
	return pairs, nil
}

// Run executes the full pipeline over schedules
func (s *Service) Run(ctx context.Context, schedules []models.Schedule, opts Options) (*Result, error) {
	result, err := s.run(ctx, schedules, opts)
	if err != nil {
		metrics.RecordAnalysisRun("failure")
		s.log.LogRunFailed(opts.Name, err)
		return nil, err
	}
	metrics.RecordAnalysisRun("success")
	s.log.LogRunCompleted(result.Run)
	return result, nil
}

func (s *Service) run(ctx context.Context, schedules []models.Schedule, opts Options) (*Result, error) {
	startedAt := s.now()

	if len(schedules) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewSchedules, len(schedules))
	}
	if err := models.ValidateSchedules(opts.Teams, schedules); err != nil {
		return nil, err
	}
	s.log.LogRunStarted(opts.Name, opts.Teams, len(schedules))

	result := &Result{}
	if opts.Verify {
		result.Violations = s.Verify(opts.Teams, schedules)
	}

	pairs, err := s.Compare(ctx, schedules, opts)
	if err != nil {
		return nil, err
	}
	result.Pairs = pairs
	result.Streams = divergence.Streams(pairs)

	if opts.OutputDir != "" {
		paths, err := schedule.WriteStreams(opts.OutputDir, opts.Name, result.Streams)
		if err != nil {
			return nil, err
		}
		result.StreamPaths = paths
	}

	for _, metric := range models.AllMetrics {
		summary, err := s.Summarize(ctx, metric, result.Streams.Stream(metric), opts)
		if err != nil {
			return nil, err
		}
		result.Summaries = append(result.Summaries, summary)
	}

	counts := verifier.CountByKind(result.Violations)
	result.Report = report.Report{
		Name:          opts.Name,
		Teams:         opts.Teams,
		ScheduleCount: len(schedules),
		PairCount:     len(pairs),
		Violations:    counts,
		Summaries:     result.Summaries,
		Streams:       result.Streams,
	}
	if err := writeReports(result.Report, opts); err != nil {
		return nil, err
	}

	summaries, err := json.Marshal(result.Summaries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summaries: %w", err)
	}
	result.Run = &models.AnalysisRun{
		ID:             uuid.New(),
		Name:           opts.Name,
		Teams:          opts.Teams,
		ScheduleCount:  len(schedules),
		PairCount:      len(pairs),
		ViolationCount: len(result.Violations),
		Summaries:      summaries,
		StartedAt:      startedAt,
		CompletedAt:    s.now(),
	}

	if s.runs != nil {
		if err := s.runs.Save(ctx, result.Run); err != nil {
			return nil, fmt.Errorf("failed to persist analysis run: %w", err)
		}
	}

	return result, nil
}

func writeReports(r report.Report, opts Options) error {
	if opts.CSVPath != "" {
		if err := report.WriteCSV(opts.CSVPath, r); err != nil {
			return fmt.Errorf("failed to write csv report: %w", err)
		}
	}
	if opts.XLSXPath != "" {
		if err := report.WriteXLSX(opts.XLSXPath, r); err != nil {
			return fmt.Errorf("failed to write xlsx report: %w", err)
		}
	}
	return nil
}
