// Package distribution evaluates the probability models used to describe
// schedule difference profiles.
package distribution

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// BetaBinomial is the beta-binomial distribution over the integers [0, N]
type BetaBinomial struct {
	N     int
	Alpha float64
	Beta  float64
}

// NewBetaBinomial creates a beta-binomial distribution
func NewBetaBinomial(n int, alpha, beta float64) BetaBinomial {
	return BetaBinomial{N: n, Alpha: alpha, Beta: beta}
}

// Valid reports whether both shape parameters are positive and finite
func (d BetaBinomial) Valid() bool {
	return d.Alpha > 0 && d.Beta > 0 && !math.IsInf(d.Alpha, 0) && !math.IsInf(d.Beta, 0) && d.N >= 0
}

// PMF returns P(X = x). Non-integer x and x outside [0, N] have probability 0.
// Invalid shape parameters give NaN.
func (d BetaBinomial) PMF(x float64) float64 {
	if !d.Valid() {
		return math.NaN()
	}
	if x != math.Trunc(x) || x < 0 || x > float64(d.N) {
		return 0
	}
	n := float64(d.N)
	lnChoose := lgamma(n+1) - lgamma(x+1) - lgamma(n-x+1)
	lnBeta := mathext.Lbeta(x+d.Alpha, n-x+d.Beta) - mathext.Lbeta(d.Alpha, d.Beta)
	return math.Exp(lnChoose + lnBeta)
}

// PMFAt evaluates the PMF at each support point
func (d BetaBinomial) PMFAt(support []float64) []float64 {
	values := make([]float64, len(support))
	for i, x := range support {
		values[i] = d.PMF(x)
	}
	return values
}

// Mean returns the expected value
func (d BetaBinomial) Mean() float64 {
	if !d.Valid() {
		return math.NaN()
	}
	return float64(d.N) * d.Alpha / (d.Alpha + d.Beta)
}

// Variance returns the variance
func (d BetaBinomial) Variance() float64 {
	if !d.Valid() {
		return math.NaN()
	}
	n := float64(d.N)
	sum := d.Alpha + d.Beta
	return n * d.Alpha * d.Beta * (sum + n) / (sum * sum * (sum + 1))
}

// StdDev returns the standard deviation
func (d BetaBinomial) StdDev() float64 {
	return math.Sqrt(d.Variance())
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
