package schedule

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yourusername/rr-analyzer/internal/models"
)

var streamPrefixes = map[models.DifferenceMetric]string{
	models.MetricRaw:           "Diff ",
	models.MetricVenueAgnostic: "Diff Reduced ",
	models.MetricVenueOnly:     "Diff Teamless ",
}

// StreamFileName returns the file name holding metric's stream for a named input
func StreamFileName(metric models.DifferenceMetric, name string) string {
	return streamPrefixes[metric] + name + ".csv"
}

// filePrefixes maps every recognized stream file prefix to its metric,
// including the "Differences" names used by aggregated runs. Longer prefixes
// come first since "Diff " matches every stream file.
var filePrefixes = []struct {
	prefix string
	metric models.DifferenceMetric
}{
	{"Differences Reduced ", models.MetricVenueAgnostic},
	{"Differences Teamless ", models.MetricVenueOnly},
	{"Differences ", models.MetricRaw},
	{"Diff Reduced ", models.MetricVenueAgnostic},
	{"Diff Teamless ", models.MetricVenueOnly},
	{"Diff ", models.MetricRaw},
}

// MetricForFile infers the metric of a stream file from its name
func MetricForFile(path string) (models.DifferenceMetric, bool) {
	base := filepath.Base(path)
	for _, p := range filePrefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.metric, true
		}
	}
	return "", false
}

// WriteStream writes values as a single line of "v," tokens
func WriteStream(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		bw.WriteString(strconv.Itoa(v))
		bw.WriteByte(',')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write stream: %w", err)
	}
	return nil
}

// ReadStream parses a stream written by WriteStream. A trailing comma,
// surrounding whitespace and line breaks are tolerated.
func ReadStream(r io.Reader) ([]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var values []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read stream: %w", err)
		}
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("invalid stream value %q: %w", field, err)
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// ReadStreamFile reads a stream from path
func ReadStreamFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream file: %w", err)
	}
	defer f.Close()

	values, err := ReadStream(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// WriteStreams writes the three metric streams into dir, returning the path
// of each file
func WriteStreams(dir, name string, streams models.DifferenceStreams) (map[models.DifferenceMetric]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make(map[models.DifferenceMetric]string, len(models.AllMetrics))
	for _, metric := range models.AllMetrics {
		path := filepath.Join(dir, StreamFileName(metric, name))
		if err := writeStreamFile(path, streams.Stream(metric)); err != nil {
			return nil, err
		}
		paths[metric] = path
	}
	return paths, nil
}

func writeStreamFile(path string, values []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create stream file: %w", err)
	}
	if err := WriteStream(f, values); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
