package models

import "fmt"

// Matchup is a single game; Home hosts Away
type Matchup struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Reverse returns the same pairing with venues swapped
func (m Matchup) Reverse() Matchup {
	return Matchup{Home: m.Away, Away: m.Home}
}

// Involves reports whether the team plays in this matchup
func (m Matchup) Involves(team int) bool {
	return m.Home == team || m.Away == team
}

// SharesTeam reports whether two matchups have at least one team in common
func (m Matchup) SharesTeam(other Matchup) bool {
	return other.Involves(m.Home) || other.Involves(m.Away)
}

func (m Matchup) String() string {
	return fmt.Sprintf("(%d,%d)", m.Home, m.Away)
}

// Round is the set of matchups played in one round; every team appears once
type Round []Matchup

// Contains reports whether the exact (venue-sensitive) matchup is in the round
func (r Round) Contains(m Matchup) bool {
	for _, candidate := range r {
		if candidate == m {
			return true
		}
	}
	return false
}

// Schedule is an ordered sequence of rounds of equal size
type Schedule []Round

// Flatten returns the matchups in play order
func (s Schedule) Flatten() []Matchup {
	total := 0
	for _, round := range s {
		total += len(round)
	}
	flat := make([]Matchup, 0, total)
	for _, round := range s {
		flat = append(flat, round...)
	}
	return flat
}

// RoundSize returns the size of the first round, or 0 for an empty schedule
func (s Schedule) RoundSize() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Chunk partitions a flat matchup sequence into rounds of roundSize.
// A trailing partial chunk is kept as a short round.
func Chunk(matchups []Matchup, roundSize int) Schedule {
	if roundSize <= 0 {
		return nil
	}
	schedule := make(Schedule, 0, (len(matchups)+roundSize-1)/roundSize)
	for i := 0; i < len(matchups); i += roundSize {
		end := i + roundSize
		if end > len(matchups) {
			end = len(matchups)
		}
		round := make(Round, end-i)
		copy(round, matchups[i:end])
		schedule = append(schedule, round)
	}
	return schedule
}

// ValidateTeamCount checks that n teams can be partitioned into rounds
func ValidateTeamCount(n int) error {
	if n%2 != 0 {
		return fmt.Errorf("%w: %d", ErrOddTeamCount, n)
	}
	if n < 4 {
		return fmt.Errorf("%w: %d", ErrTooFewTeams, n)
	}
	return nil
}

// ValidateSchedules checks that every schedule has the same round count and
// that every round holds exactly n/2 matchups of teams in [0, n)
func ValidateSchedules(n int, schedules []Schedule) error {
	if err := ValidateTeamCount(n); err != nil {
		return err
	}
	roundSize := n / 2
	for idx, schedule := range schedules {
		if len(schedule) != len(schedules[0]) {
			return fmt.Errorf("%w: schedule %d has %d rounds, schedule 0 has %d",
				ErrScheduleShape, idx, len(schedule), len(schedules[0]))
		}
		for r, round := range schedule {
			if len(round) != roundSize {
				return fmt.Errorf("%w: schedule %d round %d has %d matchups, want %d",
					ErrRoundSize, idx, r, len(round), roundSize)
			}
			for _, m := range round {
				if err := ValidateMatchup(n, m); err != nil {
					return fmt.Errorf("schedule %d round %d: %w", idx, r, err)
				}
			}
		}
	}
	return nil
}

// ValidateMatchup checks team bounds and that a team does not play itself
func ValidateMatchup(n int, m Matchup) error {
	if m.Home < 0 || m.Home >= n || m.Away < 0 || m.Away >= n {
		return fmt.Errorf("%w: %s with %d teams", ErrTeamOutOfRange, m, n)
	}
	if m.Home == m.Away {
		return fmt.Errorf("%w: team %d plays itself", ErrMalformedMatchup, m.Home)
	}
	return nil
}
