package schedule

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rr-analyzer/internal/models"
)

const fourTeamSchedules = `0,1 2,3 0,2 1,3 0,3 1,2 1,0 3,2 2,0 3,1 3,0 2,1
1,0 3,2 0,2 1,3 0,3 1,2 0,1 2,3 2,0 3,1 3,0 2,1

`

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []models.Matchup
		wantErr error
	}{
		{
			name: "paired tokens",
			line: "0,1 2,3",
			want: []models.Matchup{{Home: 0, Away: 1}, {Home: 2, Away: 3}},
		},
		{
			name: "parenthesized tokens",
			line: "(0,1) (2,3)",
			want: []models.Matchup{{Home: 0, Away: 1}, {Home: 2, Away: 3}},
		},
		{
			name: "flat integers",
			line: "0 1 2 3",
			want: []models.Matchup{{Home: 0, Away: 1}, {Home: 2, Away: 3}},
		},
		{
			name: "blank",
			line: "   ",
			want: nil,
		},
		{
			name:    "odd flat count",
			line:    "0 1 2",
			wantErr: models.ErrMalformedMatchup,
		},
		{
			name:    "mixed tokens",
			line:    "0,1 2",
			wantErr: models.ErrMalformedMatchup,
		},
		{
			name:    "non integer",
			line:    "0,x",
			wantErr: models.ErrMalformedMatchup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadChunksIntoRounds(t *testing.T) {
	schedules, err := Load(strings.NewReader(fourTeamSchedules), 4)
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	for _, s := range schedules {
		assert.Len(t, s, 6)
		assert.Equal(t, 2, s.RoundSize())
	}
	assert.Equal(t, models.Round{{Home: 0, Away: 1}, {Home: 2, Away: 3}}, schedules[0][0])
	assert.Equal(t, models.Round{{Home: 1, Away: 0}, {Home: 3, Away: 2}}, schedules[1][0])
}

func TestLoadHandlesCRLF(t *testing.T) {
	input := strings.ReplaceAll(fourTeamSchedules, "\n", "\r\n")
	schedules, err := Load(strings.NewReader(input), 4)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		teams   int
		wantErr error
		line    string
	}{
		{name: "odd team count", input: "0,1", teams: 5, wantErr: models.ErrOddTeamCount},
		{name: "too few teams", input: "0,1", teams: 2, wantErr: models.ErrTooFewTeams},
		{name: "partial round", input: "0,1 2,3 0,2", teams: 4, wantErr: models.ErrRoundSize, line: "line 1"},
		{name: "team out of range", input: "0,1 2,4", teams: 4, wantErr: models.ErrTeamOutOfRange, line: "line 1"},
		{name: "self matchup", input: "\n0,0 2,3", teams: 4, wantErr: models.ErrMalformedMatchup, line: "line 2"},
		{name: "shape mismatch", input: "0,1 2,3\n0,1 2,3 0,2 1,3", teams: 4, wantErr: models.ErrScheduleShape, line: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input), tt.teams)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.line != "" {
				assert.Contains(t, err.Error(), tt.line)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	schedules, err := Load(strings.NewReader("\n\n"), 4)
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestLoadSkipsShortLines(t *testing.T) {
	input := "x\n" + fourTeamSchedules + " ;\n7"
	schedules, err := Load(strings.NewReader(input), 4)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "4teams.txt")
	require.NoError(t, os.WriteFile(path, []byte(fourTeamSchedules), 0o600))

	schedules, err := LoadFile(path, 4)
	require.NoError(t, err)
	assert.Len(t, schedules, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"), 4)
	assert.Error(t, err)
}
