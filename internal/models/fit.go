package models

import "math"

// FrequencyProfile maps left-aligned bins to observed counts.
// Support holds the bin edges; Counts has one fewer entry than Support.
type FrequencyProfile struct {
	Support []float64 `json:"support"`
	Counts  []float64 `json:"counts"`
	Width   float64   `json:"width"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
}

// Total returns the number of samples binned into the profile
func (p FrequencyProfile) Total() float64 {
	total := 0.0
	for _, c := range p.Counts {
		total += c
	}
	return total
}

// Aligned returns the counts with a trailing zero so that the result has the
// same length as Support
func (p FrequencyProfile) Aligned() []float64 {
	aligned := make([]float64, len(p.Counts), len(p.Counts)+1)
	copy(aligned, p.Counts)
	return append(aligned, 0)
}

// DistributionFit is a fitted beta-binomial over [0, MaxDiff]
type DistributionFit struct {
	Alpha   float64 `json:"alpha"`
	Beta    float64 `json:"beta"`
	MaxDiff int     `json:"max_diff"`
	Score   float64 `json:"score"`
}

// Converged reports whether any candidate produced a finite score
func (f DistributionFit) Converged() bool {
	return !math.IsInf(f.Score, 0) && !math.IsNaN(f.Score)
}

// DistributionKind names the model used to summarize a metric
type DistributionKind string

// Distribution kinds
const (
	DistributionBetaBinomial DistributionKind = "beta_binomial"
	DistributionNormal       DistributionKind = "normal"
)

// MetricSummary is the fitted model and summary statistics for one metric stream
type MetricSummary struct {
	Metric       DifferenceMetric `json:"metric"`
	Distribution DistributionKind `json:"distribution"`
	Samples      int              `json:"samples"`
	Mean         float64          `json:"mean"`
	StdDev       float64          `json:"std_dev"`
	SampleMean   float64          `json:"sample_mean"`
	SampleStdDev float64          `json:"sample_std_dev"`
	Fit          *DistributionFit `json:"fit,omitempty"`
	RSquared     float64          `json:"r_squared"`
	Converged    bool             `json:"converged"`
	Profile      FrequencyProfile `json:"profile"`

	// CurveRSquared scores the continuous beta curve over [0, MaxDiff]
	// against the profile. Set for converged beta-binomial fits only.
	CurveRSquared float64 `json:"curve_r_squared"`
}
