// Package histogram bins difference streams into frequency profiles.
package histogram

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// DefaultWidth is the bin width used for difference profiles
const DefaultWidth = 2.0

// Scale converts a stream to floats, multiplying each value by factor
func Scale(values []int, factor float64) []float64 {
	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = float64(v) * factor
	}
	return scaled
}

// Edges returns left-aligned bin edges starting at min, stepping by width, and
// stopping before max+1+width, so the last edge lies beyond max
func Edges(min, max, width float64) []float64 {
	stop := max + 1 + width
	count := int(math.Ceil((stop - min) / width))
	edges := make([]float64, count)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	return edges
}

// Build bins values into a profile. Bins are left-closed and the last bin
// also includes its right edge.
func Build(values []float64, width float64) (models.FrequencyProfile, error) {
	if len(values) == 0 {
		return models.FrequencyProfile{}, models.ErrEmptyProfile
	}
	if width <= 0 {
		return models.FrequencyProfile{}, fmt.Errorf("bin width must be positive, got %v", width)
	}

	min, err := stats.Min(values)
	if err != nil {
		return models.FrequencyProfile{}, fmt.Errorf("failed to compute minimum: %w", err)
	}
	max, err := stats.Max(values)
	if err != nil {
		return models.FrequencyProfile{}, fmt.Errorf("failed to compute maximum: %w", err)
	}

	edges := Edges(min, max, width)
	counts := make([]float64, len(edges)-1)
	last := edges[len(edges)-1]
	for _, v := range values {
		if v < min || v > last {
			continue
		}
		idx := int(math.Floor((v - min) / width))
		if idx >= len(counts) {
			idx = len(counts) - 1
		}
		counts[idx]++
	}

	return models.FrequencyProfile{
		Support: edges,
		Counts:  counts,
		Width:   width,
		Min:     min,
		Max:     max,
	}, nil
}

// Normalize divides each count by the total. A zero total yields NaN entries,
// which downstream scoring treats as a degenerate profile.
func Normalize(counts []float64) []float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	normalized := make([]float64, len(counts))
	for i, c := range counts {
		normalized[i] = c / total
	}
	return normalized
}

// Describe returns the sample mean and population standard deviation of values
func Describe(values []float64) (float64, float64, error) {
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute mean: %w", err)
	}
	std, err := stats.StandardDeviationPopulation(values)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to compute standard deviation: %w", err)
	}
	return mean, std, nil
}
