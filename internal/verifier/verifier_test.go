package verifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rr-analyzer/internal/models"
)

func m(home, away int) models.Matchup {
	return models.Matchup{Home: home, Away: away}
}

// doubleRoundRobin4 is a valid six-round double round robin for four teams
func doubleRoundRobin4() []models.Matchup {
	return []models.Matchup{
		m(0, 1), m(2, 3),
		m(1, 2), m(3, 0),
		m(0, 2), m(1, 3),
		m(1, 0), m(3, 2),
		m(2, 1), m(0, 3),
		m(2, 0), m(3, 1),
	}
}

func ofKind(violations []models.Violation, kind models.ViolationKind) []models.Violation {
	var filtered []models.Violation
	for _, v := range violations {
		if v.Kind == kind {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func TestVerifyValidDoubleRoundRobin(t *testing.T) {
	pool := NewFullPool(4)
	require.Equal(t, 12, pool.Len())

	violations := Verify(4, doubleRoundRobin4(), pool)

	assert.Empty(t, violations)
	assert.Equal(t, 0, pool.Len())
}

func TestVerifyThreeRoundScenario(t *testing.T) {
	schedule := []models.Matchup{m(0, 1), m(2, 3), m(1, 2), m(3, 0), m(0, 2), m(1, 3)}
	pool := NewFullPool(4)

	violations := Verify(4, schedule, pool)

	assert.Empty(t, violations)
	assert.Equal(t, 6, pool.Len())
}

func TestVerifyEmptySchedule(t *testing.T) {
	pool := NewMatchupPool()
	violations := Verify(4, nil, pool)
	assert.Empty(t, violations)
	assert.Equal(t, 0, pool.Len())
}

func TestVerifyReusedMatchup(t *testing.T) {
	schedule := []models.Matchup{m(0, 1), m(2, 3), m(0, 1)}

	violations := Verify(4, schedule, NewFullPool(4))

	reused := ofKind(violations, models.ViolationReusedMatchup)
	require.Len(t, reused, 1)
	assert.Equal(t, 2, reused[0].Position)
	assert.Equal(t, m(0, 1), reused[0].Matchup)
}

func TestVerifyReusedMatchupNotReturnedToPool(t *testing.T) {
	pool := NewMatchupPool(m(0, 1))
	schedule := []models.Matchup{m(0, 1), m(0, 1), m(0, 1)}

	violations := Verify(4, schedule, pool)

	assert.Len(t, ofKind(violations, models.ViolationReusedMatchup), 2)
	assert.False(t, pool.Contains(m(0, 1)))
}

func TestVerifyStreaks(t *testing.T) {
	tests := []struct {
		name      string
		matchups  []models.Matchup
		kind      models.ViolationKind
		positions []int
	}{
		{
			name:     "three home games allowed",
			matchups: []models.Matchup{m(0, 1), m(0, 2), m(0, 3)},
			kind:     models.ViolationHomeStreak,
		},
		{
			name:      "fourth home game violates",
			matchups:  []models.Matchup{m(0, 1), m(0, 2), m(0, 3), m(0, 4)},
			kind:      models.ViolationHomeStreak,
			positions: []int{3},
		},
		{
			name:      "overlong home streak reported once",
			matchups:  []models.Matchup{m(0, 1), m(0, 2), m(0, 3), m(0, 4), m(0, 5)},
			kind:      models.ViolationHomeStreak,
			positions: []int{3},
		},
		{
			name:      "fourth away game violates",
			matchups:  []models.Matchup{m(1, 0), m(2, 0), m(3, 0), m(4, 0)},
			kind:      models.ViolationAwayStreak,
			positions: []int{3},
		},
		{
			name:     "away game resets home streak",
			matchups: []models.Matchup{m(0, 1), m(0, 2), m(0, 3), m(4, 0), m(0, 5)},
			kind:     models.ViolationHomeStreak,
		},
		{
			name:     "home game resets away streak",
			matchups: []models.Matchup{m(1, 0), m(2, 0), m(3, 0), m(0, 4), m(5, 0)},
			kind:     models.ViolationAwayStreak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ofKind(Verify(6, tt.matchups, NewFullPool(6)), tt.kind)
			positions := make([]int, 0, len(violations))
			for _, v := range violations {
				positions = append(positions, v.Position)
			}
			if len(tt.positions) == 0 {
				assert.Empty(t, positions)
				return
			}
			assert.Equal(t, tt.positions, positions)
		})
	}
}

func TestSessionStreakCounters(t *testing.T) {
	session := NewSession(6, NewFullPool(6), 0)
	for _, matchup := range []models.Matchup{m(0, 1), m(0, 2), m(3, 0)} {
		session.Observe(matchup)
	}

	assert.Equal(t, Streak{Home: 0, Away: 1}, session.Streak(0))
	assert.Equal(t, Streak{Home: 1, Away: 0}, session.Streak(3))
	assert.Equal(t, Streak{Home: 0, Away: 1}, session.Streak(1))
}

func TestVerifySameRound(t *testing.T) {
	schedule := []models.Matchup{m(0, 1), m(0, 2)}

	violations := Verify(4, schedule, NewFullPool(4))

	sameRound := ofKind(violations, models.ViolationSameRound)
	require.Len(t, sameRound, 1)
	assert.Equal(t, 1, sameRound[0].Position)
	require.NotNil(t, sameRound[0].Conflict)
	assert.Equal(t, m(0, 1), *sameRound[0].Conflict)
	assert.Equal(t, models.Round{m(0, 1), m(0, 2)}, sameRound[0].Current)
}

func TestVerifySameRoundResetsAtRoundBoundary(t *testing.T) {
	// team 0 plays in consecutive rounds, which is fine
	schedule := []models.Matchup{m(0, 1), m(2, 3), m(0, 2), m(1, 3)}

	violations := Verify(4, schedule, NewFullPool(4))

	assert.Empty(t, ofKind(violations, models.ViolationSameRound))
}

func TestVerifyBackToBackReversal(t *testing.T) {
	schedule := []models.Matchup{m(0, 1), m(2, 3), m(1, 0), m(3, 2)}

	violations := Verify(4, schedule, NewFullPool(4))

	backToBack := ofKind(violations, models.ViolationBackToBack)
	require.Len(t, backToBack, 2)
	assert.Equal(t, 2, backToBack[0].Position)
	assert.Equal(t, models.Round{m(0, 1), m(2, 3)}, backToBack[0].Previous)
	assert.Equal(t, 3, backToBack[1].Position)
	assert.Len(t, violations, 2)
}

func TestVerifyBackToBackOnlyChecksPreviousRound(t *testing.T) {
	// (1,0) reverses a matchup two rounds back, which is allowed
	schedule := []models.Matchup{
		m(0, 1), m(2, 3),
		m(0, 2), m(1, 3),
		m(1, 0), m(3, 2),
	}

	violations := Verify(4, schedule, NewFullPool(4))

	assert.Empty(t, ofKind(violations, models.ViolationBackToBack))
}

func TestVerifyCollectsIndependentViolations(t *testing.T) {
	schedule := []models.Matchup{m(0, 1), m(2, 3), m(1, 0), m(0, 1)}

	violations := VerifySchedule(4, schedule, NewFullPool(4), 7)

	counts := CountByKind(violations)
	assert.Equal(t, 1, counts[models.ViolationReusedMatchup])
	assert.Equal(t, 1, counts[models.ViolationSameRound])
	assert.Equal(t, 1, counts[models.ViolationBackToBack])
	for _, v := range violations {
		assert.Equal(t, 7, v.Schedule)
	}
}

func TestViolationString(t *testing.T) {
	violations := Verify(4, []models.Matchup{m(0, 1), m(0, 1)}, NewFullPool(4))
	reused := ofKind(violations, models.ViolationReusedMatchup)
	require.Len(t, reused, 1)
	assert.Contains(t, reused[0].String(), "Matchup used multiple times: (0,1)")
}
