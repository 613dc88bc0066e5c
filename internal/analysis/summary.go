package analysis

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/yourusername/rr-analyzer/internal/cache"
	"github.com/yourusername/rr-analyzer/internal/distribution"
	"github.com/yourusername/rr-analyzer/internal/fitter"
	"github.com/yourusername/rr-analyzer/internal/histogram"
	"github.com/yourusername/rr-analyzer/internal/metrics"
	"github.com/yourusername/rr-analyzer/internal/models"
)

// Summarize bins one difference stream and fits its distribution. Matchup
// metrics are scaled by MatchupScale and fitted with a beta-binomial, the
// venue-only metric gets a normal fit.
func (s *Service) Summarize(ctx context.Context, metric models.DifferenceMetric, stream []int, opts Options) (models.MetricSummary, error) {
	start := time.Now()

	scale := 1.0
	if metric.IsMatchupMetric() {
		scale = opts.MatchupScale
	}
	values := histogram.Scale(stream, scale)

	profile, err := histogram.Build(values, opts.BinWidth)
	if err != nil {
		return models.MetricSummary{}, fmt.Errorf("%s: %w", metric, err)
	}
	sampleMean, sampleStd, err := histogram.Describe(values)
	if err != nil {
		return models.MetricSummary{}, fmt.Errorf("%s: %w", metric, err)
	}

	summary := models.MetricSummary{
		Metric:       metric,
		Samples:      len(values),
		SampleMean:   sampleMean,
		SampleStdDev: sampleStd,
		Profile:      profile,
	}

	var (
		score  float64
		cached bool
	)
	if metric.IsMatchupMetric() {
		score, cached, err = s.fitBetaBinomial(ctx, &summary, opts)
		if err != nil {
			return models.MetricSummary{}, fmt.Errorf("%s: %w", metric, err)
		}
	} else {
		score = fitNormal(&summary, values)
	}

	duration := time.Since(start)
	metrics.RecordFit(string(metric), duration.Seconds(), score)
	s.log.LogFitCompleted(summary, duration, cached)
	return summary, nil
}

func (s *Service) fitBetaBinomial(ctx context.Context, summary *models.MetricSummary, opts Options) (float64, bool, error) {
	summary.Distribution = models.DistributionBetaBinomial

	maxDiff := opts.MaxDiff
	if maxDiff <= 0 {
		maxDiff = int(math.Ceil(summary.Profile.Max))
	}

	key := cache.NewKey(summary.Profile, maxDiff, opts.Fitter)
	fit, cached := s.lookup(key)
	if !cached {
		var err error
		fit, err = fitter.FitProfile(ctx, summary.Profile, maxDiff, opts.Fitter)
		if err != nil {
			return 0, false, err
		}
		if fit.Converged() && s.cache != nil {
			s.cache.Set(key, fit)
		}
	}

	if !fit.Converged() {
		summary.Mean = summary.SampleMean
		summary.StdDev = summary.SampleStdDev
		return fit.Score, cached, nil
	}

	d := distribution.NewBetaBinomial(maxDiff, fit.Alpha, fit.Beta)
	observed := histogram.Normalize(summary.Profile.Aligned())
	summary.Fit = &fit
	summary.Mean = d.Mean()
	summary.StdDev = d.StdDev()
	summary.RSquared = finite(distribution.RSquared(observed, d.PMFAt(summary.Profile.Support)))
	summary.CurveRSquared = finite(distribution.BetaRSquared(summary.Profile.Support, observed, float64(maxDiff), fit.Alpha, fit.Beta))
	summary.Converged = true
	return fit.Score, cached, nil
}

func (s *Service) lookup(key cache.Key) (models.DistributionFit, bool) {
	if s.cache == nil {
		return models.DistributionFit{}, false
	}
	return s.cache.Get(key)
}

// fitNormal fills summary with the maximum likelihood normal fit and returns
// the squared error of the binned density against the observed profile
func fitNormal(summary *models.MetricSummary, values []float64) float64 {
	summary.Distribution = models.DistributionNormal

	d, err := distribution.FitNormal(values)
	if err != nil || d.Sigma == 0 {
		summary.Mean = summary.SampleMean
		summary.StdDev = summary.SampleStdDev
		return math.Inf(1)
	}

	observed := histogram.Normalize(summary.Profile.Aligned())
	predicted := d.PDFAt(summary.Profile.Support)
	score := 0.0
	for i := range predicted {
		predicted[i] *= summary.Profile.Width
		diff := observed[i] - predicted[i]
		score += diff * diff
	}

	summary.Mean = d.Mu
	summary.StdDev = d.Sigma
	summary.RSquared = finite(distribution.RSquared(observed, predicted))
	summary.Converged = true
	return score
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
