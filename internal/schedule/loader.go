// Package schedule reads schedule files and reads and writes difference stream files.
package schedule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yourusername/rr-analyzer/internal/models"
)

const maxLineBytes = 4 * 1024 * 1024

// ParseLine parses one schedule line into its flat matchup sequence.
// Tokens are either "home,away" pairs, optionally parenthesized, or a bare
// sequence of integers read two at a time.
func ParseLine(line string) ([]models.Matchup, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, nil
	}

	paired := strings.Contains(tokens[0], ",")
	if !paired {
		return parseFlat(tokens)
	}

	matchups := make([]models.Matchup, 0, len(tokens))
	for i, token := range tokens {
		token = strings.TrimSuffix(strings.TrimPrefix(token, "("), ")")
		home, away, ok := strings.Cut(token, ",")
		if !ok {
			return nil, fmt.Errorf("%w: token %d %q is not a home,away pair", models.ErrMalformedMatchup, i, token)
		}
		m, err := parsePair(home, away)
		if err != nil {
			return nil, fmt.Errorf("token %d %q: %w", i, token, err)
		}
		matchups = append(matchups, m)
	}
	return matchups, nil
}

func parseFlat(tokens []string) ([]models.Matchup, error) {
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of team indices (%d)", models.ErrMalformedMatchup, len(tokens))
	}
	matchups := make([]models.Matchup, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		m, err := parsePair(tokens[i], tokens[i+1])
		if err != nil {
			return nil, fmt.Errorf("tokens %d-%d: %w", i, i+1, err)
		}
		matchups = append(matchups, m)
	}
	return matchups, nil
}

func parsePair(home, away string) (models.Matchup, error) {
	h, err := strconv.Atoi(strings.TrimSpace(home))
	if err != nil {
		return models.Matchup{}, fmt.Errorf("%w: home %q", models.ErrMalformedMatchup, home)
	}
	a, err := strconv.Atoi(strings.TrimSpace(away))
	if err != nil {
		return models.Matchup{}, fmt.Errorf("%w: away %q", models.ErrMalformedMatchup, away)
	}
	return models.Matchup{Home: h, Away: a}, nil
}

// Load reads one schedule per non-blank line and chunks each into rounds of
// n/2 matchups. Every schedule must have the same number of rounds.
func Load(r io.Reader, n int) ([]models.Schedule, error) {
	if err := models.ValidateTeamCount(n); err != nil {
		return nil, err
	}
	roundSize := n / 2

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var schedules []models.Schedule
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		// the shortest matchup token is three characters
		if len(line) < 2 {
			continue
		}

		matchups, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(matchups)%roundSize != 0 {
			return nil, fmt.Errorf("line %d: %w: %d matchups is not a multiple of %d",
				lineNo, models.ErrRoundSize, len(matchups), roundSize)
		}
		for _, m := range matchups {
			if err := models.ValidateMatchup(n, m); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}

		schedule := models.Chunk(matchups, roundSize)
		if len(schedules) > 0 && len(schedule) != len(schedules[0]) {
			return nil, fmt.Errorf("line %d: %w: %d rounds, first schedule has %d",
				lineNo, models.ErrScheduleShape, len(schedule), len(schedules[0]))
		}
		schedules = append(schedules, schedule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedules: %w", err)
	}

	return schedules, nil
}

// LoadFile reads schedules from path
func LoadFile(path string, n int) ([]models.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schedule file: %w", err)
	}
	defer f.Close()

	schedules, err := Load(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schedules, nil
}
