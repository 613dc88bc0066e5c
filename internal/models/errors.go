package models

import "errors"

// Custom errors
var (
	ErrOddTeamCount      = errors.New("team count must be even")
	ErrTooFewTeams       = errors.New("team count must be at least 4")
	ErrMalformedMatchup  = errors.New("malformed matchup")
	ErrTeamOutOfRange    = errors.New("team index out of range")
	ErrRoundSize         = errors.New("round has wrong number of matchups")
	ErrScheduleShape     = errors.New("schedules have mismatched round counts")
	ErrEmptyProfile      = errors.New("frequency profile is empty")
	ErrDegenerateProfile = errors.New("frequency profile is degenerate")
	ErrNotFound          = errors.New("record not found")
)
