package logger

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// AnalysisLogger provides pipeline-specific logging.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogRunStarted logs the start of an analysis run.
func (al *AnalysisLogger) LogRunStarted(name string, teams, schedules int) {
	al.WithFields(logrus.Fields{
		"name":      name,
		"teams":     teams,
		"schedules": schedules,
		"event":     "run_started",
	}).Info("Analysis run started")
}

// LogPairsCompared logs completion of the pairwise comparison stage.
func (al *AnalysisLogger) LogPairsCompared(pairs int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"pairs":       pairs,
		"duration_ms": duration.Milliseconds(),
	}).Info("Schedule pairs compared")
}

// LogFitCompleted logs a completed distribution fit.
func (al *AnalysisLogger) LogFitCompleted(summary models.MetricSummary, duration time.Duration, cached bool) {
	fields := logrus.Fields{
		"metric":       string(summary.Metric),
		"distribution": string(summary.Distribution),
		"samples":      summary.Samples,
		"mean":         summary.Mean,
		"std_dev":      summary.StdDev,
		"converged":    summary.Converged,
		"cached":       cached,
		"duration_ms":  duration.Milliseconds(),
	}
	if summary.Fit != nil {
		fields["alpha"] = summary.Fit.Alpha
		fields["beta"] = summary.Fit.Beta
		fields["max_diff"] = summary.Fit.MaxDiff
		fields["r_squared"] = summary.RSquared
	}

	entry := al.WithFields(fields)
	if !summary.Converged {
		entry.Warn("Distribution fit did not converge")
		return
	}
	entry.Info("Distribution fit completed")
}

// LogRunCompleted logs a successful analysis run.
func (al *AnalysisLogger) LogRunCompleted(run *models.AnalysisRun) {
	al.WithFields(logrus.Fields{
		"run_id":      run.ID.String(),
		"name":        run.Name,
		"pairs":       run.PairCount,
		"violations":  run.ViolationCount,
		"duration_ms": run.CompletedAt.Sub(run.StartedAt).Milliseconds(),
		"event":       "run_completed",
	}).Info("Analysis run completed")
}

// LogRunFailed logs a failed analysis run.
func (al *AnalysisLogger) LogRunFailed(name string, err error) {
	al.WithFields(logrus.Fields{
		"name":  name,
		"event": "run_failed",
	}).WithError(err).Error("Analysis run failed")
}
