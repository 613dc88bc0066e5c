// Package verifier checks round-robin schedules against tournament constraints.
package verifier

import "github.com/yourusername/rr-analyzer/internal/models"

// Verify streams through the matchups of a schedule in play order and collects
// every constraint violation. It consumes pool. n must be even and at least 4.
func Verify(n int, matchups []models.Matchup, pool *MatchupPool) []models.Violation {
	return VerifySchedule(n, matchups, pool, 0)
}

// VerifySchedule is Verify with the schedule index recorded in each violation
func VerifySchedule(n int, matchups []models.Matchup, pool *MatchupPool, schedule int) []models.Violation {
	session := NewSession(n, pool, schedule)
	var violations []models.Violation
	for _, m := range matchups {
		violations = append(violations, session.Observe(m)...)
	}
	return violations
}

// CountByKind tallies violations per kind
func CountByKind(violations []models.Violation) map[models.ViolationKind]int {
	counts := make(map[models.ViolationKind]int, len(models.AllViolationKinds))
	for _, v := range violations {
		counts[v.Kind]++
	}
	return counts
}
