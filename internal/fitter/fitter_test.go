package fitter

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rr-analyzer/internal/distribution"
	"github.com/yourusername/rr-analyzer/internal/models"
)

func integerSupport(max int) []float64 {
	support := make([]float64, max+1)
	for i := range support {
		support[i] = float64(i)
	}
	return support
}

func TestFitRecoversKnownParameters(t *testing.T) {
	const maxDiff = 20
	support := integerSupport(maxDiff)
	frequencies := distribution.NewBetaBinomial(maxDiff, 20, 30).PMFAt(support)

	fit, err := Fit(context.Background(), support, frequencies, maxDiff, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 20.0, fit.Alpha, 0.01)
	assert.InDelta(t, 30.0, fit.Beta, 0.01)
	assert.Equal(t, maxDiff, fit.MaxDiff)
	assert.True(t, fit.Converged())
	assert.Less(t, fit.Score, 1e-12)
}

func TestFitRecoversOffGridParameters(t *testing.T) {
	const maxDiff = 20
	support := integerSupport(maxDiff)

	tests := []struct {
		name  string
		alpha float64
		beta  float64
	}{
		{name: "small shape", alpha: 3.37, beta: 7.52},
		{name: "mid shape", alpha: 23.37, beta: 41.52},
		{name: "near uniform", alpha: 1.5, beta: 2.25},
		{name: "right skewed", alpha: 57.3, beta: 12.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frequencies := distribution.NewBetaBinomial(maxDiff, tt.alpha, tt.beta).PMFAt(support)

			fit, err := Fit(context.Background(), support, frequencies, maxDiff, DefaultOptions())
			require.NoError(t, err)

			assert.InDelta(t, tt.alpha, fit.Alpha, 0.01)
			assert.InDelta(t, tt.beta, fit.Beta, 0.01)
			assert.Less(t, fit.Score, 1e-10)
		})
	}
}

func TestFitAcceptsUnnormalizedCounts(t *testing.T) {
	const maxDiff = 20
	support := integerSupport(maxDiff)
	pmf := distribution.NewBetaBinomial(maxDiff, 20, 30).PMFAt(support)
	counts := make([]float64, len(pmf))
	for i, p := range pmf {
		counts[i] = p * 5000
	}

	fit, err := Fit(context.Background(), support, counts, maxDiff, DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, 20.0, fit.Alpha, 0.01)
	assert.InDelta(t, 30.0, fit.Beta, 0.01)
}

func TestFitNeverReturnsInvalidParameters(t *testing.T) {
	// a small alpha puts the coarse optimum at the lower edge of the grid,
	// so refinement windows reach into negative space
	const maxDiff = 10
	support := integerSupport(maxDiff)
	frequencies := distribution.NewBetaBinomial(maxDiff, 0.5, 3).PMFAt(support)

	fit, err := Fit(context.Background(), support, frequencies, maxDiff, DefaultOptions())
	require.NoError(t, err)

	assert.Greater(t, fit.Alpha, 0.0)
	assert.Greater(t, fit.Beta, 0.0)
	assert.True(t, fit.Converged())
}

func TestSSENegativeParametersAreNaN(t *testing.T) {
	support := integerSupport(4)
	objective := SSE(support, []float64{0.2, 0.2, 0.2, 0.2, 0.2}, 4)

	assert.True(t, math.IsNaN(objective(-1, 5)))
	assert.True(t, math.IsNaN(objective(0, 5)))
	assert.InDelta(t, 0.0, objective(1, 1), 1e-15)
}

func TestFitDegenerateProfile(t *testing.T) {
	support := integerSupport(6)
	fit, err := Fit(context.Background(), support, make([]float64, len(support)), 6, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, fit.Converged())
	assert.Equal(t, 0.0, fit.Alpha)
	assert.Equal(t, 0.0, fit.Beta)
}

func TestFitShapeErrors(t *testing.T) {
	_, err := Fit(context.Background(), []float64{0, 1}, []float64{1}, 1, DefaultOptions())
	assert.Error(t, err)

	_, err = Fit(context.Background(), nil, nil, 1, DefaultOptions())
	assert.ErrorIs(t, err, models.ErrEmptyProfile)
}

func TestFitProfileAppendsTrailingZero(t *testing.T) {
	profile := models.FrequencyProfile{
		Support: []float64{0, 2, 4, 6},
		Counts:  []float64{1, 3, 1},
		Width:   2,
	}

	fit, err := FitProfile(context.Background(), profile, 4, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, fit.Converged())
}
