package distribution

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// Normal is a normal distribution with mean Mu and standard deviation Sigma
type Normal struct {
	Mu    float64
	Sigma float64
}

// PDF returns the density at x
func (d Normal) PDF(x float64) float64 {
	return distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}.Prob(x)
}

// PDFAt evaluates the density at each point
func (d Normal) PDFAt(points []float64) []float64 {
	dist := distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}
	values := make([]float64, len(points))
	for i, x := range points {
		values[i] = dist.Prob(x)
	}
	return values
}

// FitNormal returns the maximum likelihood normal fit: the sample mean and the
// population standard deviation
func FitNormal(data []float64) (Normal, error) {
	if len(data) == 0 {
		return Normal{}, models.ErrEmptyProfile
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Normal{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	std, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return Normal{}, fmt.Errorf("failed to compute standard deviation: %w", err)
	}
	return Normal{Mu: mean, Sigma: std}, nil
}

// ScaledBetaPDF is the beta density stretched over [0, scale]
func ScaledBetaPDF(x, alpha, beta, scale float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta}.Prob(x/scale) / scale
}

// RSquared is the coefficient of determination of predicted against observed
func RSquared(observed, predicted []float64) float64 {
	return stat.RSquaredFrom(predicted, observed, nil)
}

// BetaRSquared scores a continuous beta curve over [0, maxDiff] against an
// observed profile
func BetaRSquared(support, observed []float64, maxDiff, alpha, beta float64) float64 {
	predicted := make([]float64, len(support))
	for i, x := range support {
		predicted[i] = ScaledBetaPDF(x, alpha, beta, maxDiff)
	}
	return RSquared(observed, predicted)
}
