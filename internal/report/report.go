// Package report renders analysis results for the console, CSV and XLSX.
package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// Report is the rendered view of one analysis run
type Report struct {
	Name          string
	Teams         int
	ScheduleCount int
	PairCount     int
	Violations    map[models.ViolationKind]int
	Summaries     []models.MetricSummary
	Streams       models.DifferenceStreams
}

// TotalViolations sums violations across kinds
func (r Report) TotalViolations() int {
	total := 0
	for _, count := range r.Violations {
		total += count
	}
	return total
}

// SummaryHeaders are the column names of SummaryRows
var SummaryHeaders = []string{
	"metric", "distribution", "samples", "mean", "std_dev",
	"sample_mean", "sample_std_dev", "alpha", "beta", "max_diff",
	"score", "r_squared", "curve_r_squared", "converged",
}

// SummaryRows flattens metric summaries into string rows
func (r Report) SummaryRows() [][]string {
	rows := make([][]string, 0, len(r.Summaries))
	for _, s := range r.Summaries {
		alpha, beta, maxDiff, score, curve := "", "", "", "", ""
		if s.Fit != nil {
			alpha = formatFloat(s.Fit.Alpha, 4)
			beta = formatFloat(s.Fit.Beta, 4)
			maxDiff = strconv.Itoa(s.Fit.MaxDiff)
			score = formatFloat(s.Fit.Score, 6)
			curve = formatFloat(s.CurveRSquared, 4)
		}
		rows = append(rows, []string{
			string(s.Metric),
			string(s.Distribution),
			strconv.Itoa(s.Samples),
			formatFloat(s.Mean, 4),
			formatFloat(s.StdDev, 4),
			formatFloat(s.SampleMean, 4),
			formatFloat(s.SampleStdDev, 4),
			alpha,
			beta,
			maxDiff,
			score,
			formatFloat(s.RSquared, 4),
			curve,
			strconv.FormatBool(s.Converged),
		})
	}
	return rows
}

// GenerateConsoleReport formats the run for terminal output
func GenerateConsoleReport(r Report) string {
	var builder strings.Builder
	builder.WriteString("Schedule Divergence Report\n")
	builder.WriteString("==========================\n")
	builder.WriteString(fmt.Sprintf("Name: %s\n", r.Name))
	builder.WriteString(fmt.Sprintf("Teams: %d\n", r.Teams))
	builder.WriteString(fmt.Sprintf("Schedules: %d\n", r.ScheduleCount))
	builder.WriteString(fmt.Sprintf("Pairs compared: %d\n", r.PairCount))
	builder.WriteString(fmt.Sprintf("Violations: %d\n", r.TotalViolations()))

	kinds := make([]string, 0, len(r.Violations))
	for kind, count := range r.Violations {
		if count > 0 {
			kinds = append(kinds, string(kind))
		}
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		builder.WriteString(fmt.Sprintf("  %s: %d\n", kind, r.Violations[models.ViolationKind(kind)]))
	}

	for _, s := range r.Summaries {
		builder.WriteString("\n")
		builder.WriteString(GenerateSummaryText(s))
	}
	return builder.String()
}

// GenerateSummaryText formats one metric summary
func GenerateSummaryText(s models.MetricSummary) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%s (%s)\n", s.Metric.Label(), s.Distribution))
	builder.WriteString(fmt.Sprintf("  Samples: %d\n", s.Samples))
	builder.WriteString(fmt.Sprintf("  Mean: %s\n", formatFloat(s.Mean, 2)))
	builder.WriteString(fmt.Sprintf("  Std Dev: %s\n", formatFloat(s.StdDev, 2)))
	if s.Fit != nil {
		builder.WriteString(fmt.Sprintf("  Alpha: %s\n", formatFloat(s.Fit.Alpha, 2)))
		builder.WriteString(fmt.Sprintf("  Beta: %s\n", formatFloat(s.Fit.Beta, 2)))
		builder.WriteString(fmt.Sprintf("  Max Diff: %d\n", s.Fit.MaxDiff))
	}
	if s.Converged {
		builder.WriteString(fmt.Sprintf("  R²: %s\n", formatFloat(s.RSquared, 4)))
		if s.Fit != nil {
			builder.WriteString(fmt.Sprintf("  Curve R²: %s\n", formatFloat(s.CurveRSquared, 4)))
		}
	} else {
		builder.WriteString("  Fit did not converge\n")
	}
	return builder.String()
}

// formatFloat rounds half away from zero to places decimals
func formatFloat(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}
