package schedule

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rr-analyzer/internal/models"
)

func TestWriteStreamFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, []int{3, 0, 12}))
	assert.Equal(t, "3,0,12,", buf.String())

	buf.Reset()
	require.NoError(t, WriteStream(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestReadStream(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "trailing comma", input: "3,0,12,", want: []int{3, 0, 12}},
		{name: "no trailing comma", input: "3,0,12", want: []int{3, 0, 12}},
		{name: "whitespace and newline", input: " 3, 0 ,12,\n", want: []int{3, 0, 12}},
		{name: "multiple lines", input: "1,2,\n3,", want: []int{1, 2, 3}},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadStream(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadStreamInvalid(t *testing.T) {
	_, err := ReadStream(strings.NewReader("1,two,3,"))
	assert.Error(t, err)
}

func TestStreamFileNames(t *testing.T) {
	assert.Equal(t, "Diff 10teams.csv", StreamFileName(models.MetricRaw, "10teams"))
	assert.Equal(t, "Diff Reduced 10teams.csv", StreamFileName(models.MetricVenueAgnostic, "10teams"))
	assert.Equal(t, "Diff Teamless 10teams.csv", StreamFileName(models.MetricVenueOnly, "10teams"))

	for _, metric := range models.AllMetrics {
		got, ok := MetricForFile(filepath.Join("out", StreamFileName(metric, "x")))
		require.True(t, ok)
		assert.Equal(t, metric, got)
	}

	_, ok := MetricForFile("summary.csv")
	assert.False(t, ok)
}

func TestMetricForAggregatedFiles(t *testing.T) {
	tests := []struct {
		file string
		want models.DifferenceMetric
	}{
		{file: "Differences All-4.csv", want: models.MetricRaw},
		{file: "Differences Reduced All-4.csv", want: models.MetricVenueAgnostic},
		{file: "Differences Teamless Random-10k-6.csv", want: models.MetricVenueOnly},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := MetricForFile(filepath.Join("Differences", tt.file))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteStreams(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Differences")
	streams := models.DifferenceStreams{
		Raw:           []int{2, 4},
		VenueAgnostic: []int{0, 2},
		VenueOnly:     []int{4, 8},
	}

	paths, err := WriteStreams(dir, "4teams", streams)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	data, err := os.ReadFile(paths[models.MetricVenueOnly])
	require.NoError(t, err)
	assert.Equal(t, "4,8,", string(data))

	for _, metric := range models.AllMetrics {
		values, err := ReadStreamFile(paths[metric])
		require.NoError(t, err)
		assert.Equal(t, streams.Stream(metric), values)
	}
}
