package verifier

import "github.com/yourusername/rr-analyzer/internal/models"

// MatchupPool is the set of matchups a schedule is still allowed to use.
// It shrinks as a verification run consumes matchups.
type MatchupPool struct {
	remaining map[models.Matchup]struct{}
}

// NewMatchupPool creates a pool holding the given matchups
func NewMatchupPool(matchups ...models.Matchup) *MatchupPool {
	pool := &MatchupPool{remaining: make(map[models.Matchup]struct{}, len(matchups))}
	for _, m := range matchups {
		pool.remaining[m] = struct{}{}
	}
	return pool
}

// NewFullPool creates a pool of every ordered pair of distinct teams in [0, n),
// which is what a double round robin uses exactly once each
func NewFullPool(n int) *MatchupPool {
	pool := &MatchupPool{remaining: make(map[models.Matchup]struct{}, n*(n-1))}
	for home := 0; home < n; home++ {
		for away := 0; away < n; away++ {
			if home != away {
				pool.remaining[models.Matchup{Home: home, Away: away}] = struct{}{}
			}
		}
	}
	return pool
}

// Take removes the matchup from the pool. It returns false if the matchup
// was not available.
func (p *MatchupPool) Take(m models.Matchup) bool {
	if _, ok := p.remaining[m]; !ok {
		return false
	}
	delete(p.remaining, m)
	return true
}

// Contains reports whether the matchup is still available
func (p *MatchupPool) Contains(m models.Matchup) bool {
	_, ok := p.remaining[m]
	return ok
}

// Len returns the number of matchups still available
func (p *MatchupPool) Len() int {
	return len(p.remaining)
}
