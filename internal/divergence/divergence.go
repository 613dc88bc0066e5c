// Package divergence measures how much independently generated schedules differ.
package divergence

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/rr-analyzer/internal/models"
)

// roundIndex answers membership questions about one round of the compared schedule
type roundIndex struct {
	matchups map[models.Matchup]struct{}
	homes    map[int]struct{}
	aways    map[int]struct{}
}

func newRoundIndex(round models.Round) roundIndex {
	idx := roundIndex{
		matchups: make(map[models.Matchup]struct{}, len(round)),
		homes:    make(map[int]struct{}, len(round)),
		aways:    make(map[int]struct{}, len(round)),
	}
	for _, m := range round {
		idx.matchups[m] = struct{}{}
		idx.homes[m.Home] = struct{}{}
		idx.aways[m.Away] = struct{}{}
	}
	return idx
}

func (idx roundIndex) has(m models.Matchup) bool {
	_, ok := idx.matchups[m]
	return ok
}

func (idx roundIndex) isHome(team int) bool {
	_, ok := idx.homes[team]
	return ok
}

func (idx roundIndex) isAway(team int) bool {
	_, ok := idx.aways[team]
	return ok
}

func indexSchedule(schedule models.Schedule) []roundIndex {
	indexed := make([]roundIndex, len(schedule))
	for r, round := range schedule {
		indexed[r] = newRoundIndex(round)
	}
	return indexed
}

// CompareRound counts how the matchups of round s differ from round t
func CompareRound(s, t models.Round) models.Difference {
	return compareRound(s, newRoundIndex(t))
}

func compareRound(s models.Round, t roundIndex) models.Difference {
	var diff models.Difference
	for _, m := range s {
		present := t.has(m)
		if !present {
			diff.Raw++
		}
		if !present && !t.has(m.Reverse()) {
			diff.VenueAgnostic++
		}
		if !t.isHome(m.Home) {
			diff.VenueOnly++
		}
		if !t.isAway(m.Away) {
			diff.VenueOnly++
		}
	}
	return diff
}

// Compare accumulates the three difference counts of s against t over all
// rounds. Rounds are aligned by position. Both schedules must have the same
// round count.
func Compare(s, t models.Schedule) models.Difference {
	return compareIndexed(s, indexSchedule(t))
}

func compareIndexed(s models.Schedule, t []roundIndex) models.Difference {
	var total models.Difference
	for r := range s {
		total.Add(compareRound(s[r], t[r]))
	}
	return total
}

// PairCount returns the number of unordered pairs among count schedules
func PairCount(count int) int {
	if count < 2 {
		return 0
	}
	return count * (count - 1) / 2
}

// CompareAll compares every pair (s, t) with s < t in input order
func CompareAll(schedules []models.Schedule) []models.PairDifference {
	indexed := make([][]roundIndex, len(schedules))
	for i, schedule := range schedules {
		indexed[i] = indexSchedule(schedule)
	}

	results := make([]models.PairDifference, 0, PairCount(len(schedules)))
	for s := 0; s < len(schedules); s++ {
		for t := s + 1; t < len(schedules); t++ {
			results = append(results, models.PairDifference{
				S:          s,
				T:          t,
				Difference: compareIndexed(schedules[s], indexed[t]),
			})
		}
	}
	return results
}

// CompareAllParallel produces the same output as CompareAll, spreading the
// outer schedule index across workers. Each worker writes only its own slots.
func CompareAllParallel(ctx context.Context, schedules []models.Schedule, workers int) ([]models.PairDifference, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	indexed := make([][]roundIndex, len(schedules))
	for i, schedule := range schedules {
		indexed[i] = indexSchedule(schedule)
	}

	count := len(schedules)
	results := make([]models.PairDifference, PairCount(count))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for s := 0; s < count-1; s++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			offset := pairOffset(count, s)
			for t := s + 1; t < count; t++ {
				results[offset+t-s-1] = models.PairDifference{
					S:          s,
					T:          t,
					Difference: compareIndexed(schedules[s], indexed[t]),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// pairOffset is the index of pair (s, s+1) in enumeration order
func pairOffset(count, s int) int {
	return s*count - s*(s+1)/2
}

// Streams splits pair differences into one stream per metric, preserving order
func Streams(pairs []models.PairDifference) models.DifferenceStreams {
	streams := models.DifferenceStreams{
		Raw:           make([]int, len(pairs)),
		VenueAgnostic: make([]int, len(pairs)),
		VenueOnly:     make([]int, len(pairs)),
	}
	for i, pair := range pairs {
		streams.Raw[i] = pair.Raw
		streams.VenueAgnostic[i] = pair.VenueAgnostic
		streams.VenueOnly[i] = pair.VenueOnly
	}
	return streams
}
