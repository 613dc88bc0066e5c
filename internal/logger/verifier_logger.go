package logger

import (
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// VerifierLogger provides schedule verification logging.
type VerifierLogger struct {
	*logrus.Entry
}

// NewVerifierLogger creates a new verifier logger.
func NewVerifierLogger(baseLogger *logrus.Logger) *VerifierLogger {
	return &VerifierLogger{
		Entry: baseLogger.WithField("component", "verifier"),
	}
}

// LogViolation logs a single constraint violation.
func (vl *VerifierLogger) LogViolation(v models.Violation) {
	fields := logrus.Fields{
		"schedule": v.Schedule,
		"kind":     string(v.Kind),
		"home":     v.Matchup.Home,
		"away":     v.Matchup.Away,
		"position": v.Position,
	}
	if v.Conflict != nil {
		fields["conflict"] = v.Conflict.String()
	}
	vl.WithFields(fields).Warn(v.String())
}

// LogScheduleVerified logs the outcome of verifying one schedule.
func (vl *VerifierLogger) LogScheduleVerified(schedule, matchups, violations int) {
	entry := vl.WithFields(logrus.Fields{
		"schedule":   schedule,
		"matchups":   matchups,
		"violations": violations,
	})
	if violations > 0 {
		entry.Warn("Schedule verified with violations")
		return
	}
	entry.Debug("Schedule verified")
}
