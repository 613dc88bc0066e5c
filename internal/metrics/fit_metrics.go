package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

// Fit histogram vectors
var (
	FitDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rr_analyzer",
		Name:      "fit_duration_seconds",
		Help:      "Duration of distribution fits in seconds by metric",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}, []string{"metric"})
)

// Fit gauge vectors
var (
	FitScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "rr_analyzer",
		Name:      "fit_score",
		Help:      "Sum of squared errors of the latest fit by metric",
	}, []string{"metric"})
	FitCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "rr_analyzer",
		Name:      "fit_cache_hit_ratio",
		Help:      "Hit ratio of the fit cache",
	})
)

// RecordFit records the duration and score of a fit.
// A fit that did not converge is recorded with score -1.
func RecordFit(metric string, durationSeconds, score float64) {
	FitDuration.WithLabelValues(metric).Observe(durationSeconds)
	if math.IsInf(score, 0) || math.IsNaN(score) {
		score = -1
	}
	FitScore.WithLabelValues(metric).Set(score)
}

// UpdateFitCacheHitRatio updates the fit cache hit ratio gauge.
func UpdateFitCacheHitRatio(ratio float64) {
	FitCacheHitRatio.Set(ratio)
}
