package fitter

import (
	"context"
	"fmt"

	"github.com/yourusername/rr-analyzer/internal/distribution"
	"github.com/yourusername/rr-analyzer/internal/histogram"
	"github.com/yourusername/rr-analyzer/internal/models"
)

// SSE returns the sum of squared errors between a probability profile and the
// beta-binomial PMF over [0, maxDiff] evaluated at support
func SSE(support, expected []float64, maxDiff int) Objective {
	return func(alpha, beta float64) float64 {
		d := distribution.NewBetaBinomial(maxDiff, alpha, beta)
		score := 0.0
		for i, x := range support {
			diff := expected[i] - d.PMF(x)
			score += diff * diff
		}
		return score
	}
}

// Fit finds the beta-binomial parameters whose PMF best matches the
// frequencies at the support points. Frequencies are normalized to sum to one
// and must be aligned with support (one trailing zero past the last bin).
// A degenerate profile is not an error: the returned fit keeps the sentinel
// parameters and an infinite score.
func Fit(ctx context.Context, support, frequencies []float64, maxDiff int, opts Options) (models.DistributionFit, error) {
	if len(support) != len(frequencies) {
		return models.DistributionFit{}, fmt.Errorf("support has %d points but profile has %d frequencies", len(support), len(frequencies))
	}
	if len(support) == 0 {
		return models.DistributionFit{}, models.ErrEmptyProfile
	}

	expected := histogram.Normalize(frequencies)
	result, err := Search(ctx, SSE(support, expected, maxDiff), opts)
	if err != nil {
		return models.DistributionFit{}, fmt.Errorf("grid search failed: %w", err)
	}

	return models.DistributionFit{
		Alpha:   result.Alpha,
		Beta:    result.Beta,
		MaxDiff: maxDiff,
		Score:   result.Score,
	}, nil
}

// FitProfile fits a binned profile, appending the trailing zero to its counts
func FitProfile(ctx context.Context, profile models.FrequencyProfile, maxDiff int, opts Options) (models.DistributionFit, error) {
	return Fit(ctx, profile.Support, profile.Aligned(), maxDiff, opts)
}
