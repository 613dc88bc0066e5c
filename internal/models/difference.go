package models

// DifferenceMetric names one of the three per-pair difference counts
type DifferenceMetric string

// Difference metrics, in output order
const (
	MetricRaw           DifferenceMetric = "raw"
	MetricVenueAgnostic DifferenceMetric = "venue_agnostic"
	MetricVenueOnly     DifferenceMetric = "venue_only"
)

// AllMetrics lists the metrics in output order
var AllMetrics = []DifferenceMetric{MetricRaw, MetricVenueAgnostic, MetricVenueOnly}

// Label returns the human-readable title used in reports
func (m DifferenceMetric) Label() string {
	switch m {
	case MetricRaw:
		return "Differences between schedules"
	case MetricVenueAgnostic:
		return "Without home/away assignments"
	case MetricVenueOnly:
		return "Only home/away assignments"
	default:
		return string(m)
	}
}

// IsMatchupMetric reports whether the metric counts matchups rather than venue slots
func (m DifferenceMetric) IsMatchupMetric() bool {
	return m == MetricRaw || m == MetricVenueAgnostic
}

// Difference holds the three difference counts for one schedule pair
type Difference struct {
	Raw           int `json:"raw"`
	VenueAgnostic int `json:"venue_agnostic"`
	VenueOnly     int `json:"venue_only"`
}

// Value returns the count for a metric
func (d Difference) Value(metric DifferenceMetric) int {
	switch metric {
	case MetricRaw:
		return d.Raw
	case MetricVenueAgnostic:
		return d.VenueAgnostic
	case MetricVenueOnly:
		return d.VenueOnly
	default:
		return 0
	}
}

// Add accumulates another difference into d
func (d *Difference) Add(other Difference) {
	d.Raw += other.Raw
	d.VenueAgnostic += other.VenueAgnostic
	d.VenueOnly += other.VenueOnly
}

// PairDifference is the difference between schedules S and T, with S < T
type PairDifference struct {
	S int `json:"s"`
	T int `json:"t"`
	Difference
}

// DifferenceStreams holds one value per schedule pair for each metric,
// in pair enumeration order
type DifferenceStreams struct {
	Raw           []int `json:"raw"`
	VenueAgnostic []int `json:"venue_agnostic"`
	VenueOnly     []int `json:"venue_only"`
}

// Stream returns the values for a metric
func (s DifferenceStreams) Stream(metric DifferenceMetric) []int {
	switch metric {
	case MetricRaw:
		return s.Raw
	case MetricVenueAgnostic:
		return s.VenueAgnostic
	case MetricVenueOnly:
		return s.VenueOnly
	default:
		return nil
	}
}

// Len returns the number of pairs in the streams
func (s DifferenceStreams) Len() int {
	return len(s.Raw)
}
