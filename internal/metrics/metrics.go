// Package metrics provides the centralized Prometheus metrics registry for the analyzer.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SchedulesVerifiedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rr_analyzer",
		Name:      "schedules_verified_total",
		Help:      "Total number of schedules verified",
	})
	ViolationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rr_analyzer",
		Name:      "violations_total",
		Help:      "Total number of constraint violations by kind",
	}, []string{"kind"})
	SchedulePairsComparedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rr_analyzer",
		Name:      "schedule_pairs_compared_total",
		Help:      "Total number of schedule pairs compared",
	})
	AnalysisRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rr_analyzer",
		Name:      "analysis_runs_total",
		Help:      "Total number of analysis runs by status",
	}, []string{"status"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SchedulesVerifiedTotal)
		registry.MustRegister(ViolationsTotal)
		registry.MustRegister(SchedulePairsComparedTotal)
		registry.MustRegister(AnalysisRunsTotal)

		// Register fit metrics
		registry.MustRegister(FitDuration)
		registry.MustRegister(FitScore)
		registry.MustRegister(FitCacheHitRatio)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// RecordScheduleVerified records one verified schedule and its violations by kind.
func RecordScheduleVerified(violationsByKind map[string]int) {
	SchedulesVerifiedTotal.Inc()
	for kind, count := range violationsByKind {
		ViolationsTotal.WithLabelValues(kind).Add(float64(count))
	}
}

// RecordPairsCompared records compared schedule pairs.
func RecordPairsCompared(count int) {
	SchedulePairsComparedTotal.Add(float64(count))
}

// RecordAnalysisRun records a pipeline run.
// status should be one of: "success", "failure"
func RecordAnalysisRun(status string) {
	AnalysisRunsTotal.WithLabelValues(status).Inc()
}
