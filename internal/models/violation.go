package models

import (
	"fmt"
	"strings"
)

// ViolationKind identifies which tournament constraint was broken
type ViolationKind string

// Violation kinds
const (
	ViolationReusedMatchup ViolationKind = "reused_matchup"
	ViolationHomeStreak    ViolationKind = "home_streak"
	ViolationAwayStreak    ViolationKind = "away_streak"
	ViolationSameRound     ViolationKind = "same_round"
	ViolationBackToBack    ViolationKind = "back_to_back"
)

// AllViolationKinds lists every kind in reporting order
var AllViolationKinds = []ViolationKind{
	ViolationReusedMatchup,
	ViolationHomeStreak,
	ViolationAwayStreak,
	ViolationSameRound,
	ViolationBackToBack,
}

// Violation describes one broken constraint found while verifying a schedule
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Matchup  Matchup       `json:"matchup"`
	Position int           `json:"position"`
	Schedule int           `json:"schedule"`
	// Conflict is the other matchup involved, for same-round and back-to-back kinds
	Conflict *Matchup `json:"conflict,omitempty"`
	Current  Round    `json:"current,omitempty"`
	Previous Round    `json:"previous,omitempty"`
}

func (v Violation) String() string {
	var b strings.Builder
	switch v.Kind {
	case ViolationReusedMatchup:
		fmt.Fprintf(&b, "Matchup used multiple times: %s", v.Matchup)
	case ViolationHomeStreak:
		fmt.Fprintf(&b, "Home streak violation: %s", v.Matchup)
	case ViolationAwayStreak:
		fmt.Fprintf(&b, "Away streak violation: %s", v.Matchup)
	case ViolationSameRound:
		fmt.Fprintf(&b, "Same team plays multiple times in one round: %s", v.Matchup)
		if v.Conflict != nil {
			fmt.Fprintf(&b, " conflicts with %s", *v.Conflict)
		}
		fmt.Fprintf(&b, ", round: %s", formatRound(v.Current))
	case ViolationBackToBack:
		fmt.Fprintf(&b, "Back-to-back matchup: %s, prev_round: %s, current: %s",
			v.Matchup, formatRound(v.Previous), formatRound(v.Current))
	default:
		fmt.Fprintf(&b, "%s: %s", v.Kind, v.Matchup)
	}
	fmt.Fprintf(&b, ", position: %d, schedule#: %d", v.Position, v.Schedule)
	return b.String()
}

func formatRound(r Round) string {
	parts := make([]string, len(r))
	for i, m := range r {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
