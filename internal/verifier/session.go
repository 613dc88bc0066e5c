package verifier

import "github.com/yourusername/rr-analyzer/internal/models"

// MaxStreak is the longest run of consecutive home (or away) games a team may play
const MaxStreak = 3

// Streak counts consecutive games at one venue. At most one counter is nonzero.
type Streak struct {
	Home int
	Away int
}

// Session is the mutable state of a single verification run. It owns the
// streak counters, the matchup pool, and two round buffers that rotate as
// rounds fill.
type Session struct {
	n         int
	roundSize int
	schedule  int
	position  int
	pool      *MatchupPool
	streaks   []Streak
	current   models.Round
	previous  models.Round
}

// NewSession starts a verification run for a tournament of n teams. The
// session consumes pool. schedule is the index reported in violations.
func NewSession(n int, pool *MatchupPool, schedule int) *Session {
	roundSize := n / 2
	return &Session{
		n:         n,
		roundSize: roundSize,
		schedule:  schedule,
		pool:      pool,
		streaks:   make([]Streak, n),
		current:   make(models.Round, 0, roundSize),
		previous:  make(models.Round, 0, roundSize),
	}
}

// Observe checks the next matchup in play order and returns the violations it causes
func (s *Session) Observe(m models.Matchup) []models.Violation {
	var violations []models.Violation

	if !s.pool.Take(m) {
		violations = append(violations, s.violation(models.ViolationReusedMatchup, m))
	}

	home := &s.streaks[m.Home]
	if home.Home == MaxStreak {
		violations = append(violations, s.violation(models.ViolationHomeStreak, m))
	}
	home.Home++
	home.Away = 0

	away := &s.streaks[m.Away]
	if away.Away == MaxStreak {
		violations = append(violations, s.violation(models.ViolationAwayStreak, m))
	}
	away.Away++
	away.Home = 0

	s.place(m)

	for _, other := range s.current {
		if other != m && m.SharesTeam(other) {
			v := s.violation(models.ViolationSameRound, m)
			conflict := other
			v.Conflict = &conflict
			violations = append(violations, v)
		}
	}

	if s.previous.Contains(m.Reverse()) {
		v := s.violation(models.ViolationBackToBack, m)
		reversed := m.Reverse()
		v.Conflict = &reversed
		violations = append(violations, v)
	}

	s.position++
	return violations
}

// place appends m to the round being filled. A full round becomes the
// previous round and m starts a new one.
func (s *Session) place(m models.Matchup) {
	if len(s.current) < s.roundSize {
		s.current = append(s.current, m)
		return
	}
	s.previous, s.current = s.current, s.previous[:0]
	s.current = append(s.current, m)
}

// Streak returns the current streak counters for a team
func (s *Session) Streak(team int) Streak {
	return s.streaks[team]
}

// Pool returns the pool the session consumes
func (s *Session) Pool() *MatchupPool {
	return s.pool
}

func (s *Session) violation(kind models.ViolationKind, m models.Matchup) models.Violation {
	v := models.Violation{
		Kind:     kind,
		Matchup:  m,
		Position: s.position,
		Schedule: s.schedule,
	}
	if kind == models.ViolationSameRound || kind == models.ViolationBackToBack {
		v.Current = append(models.Round(nil), s.current...)
	}
	if kind == models.ViolationBackToBack {
		v.Previous = append(models.Round(nil), s.previous...)
	}
	return v
}
