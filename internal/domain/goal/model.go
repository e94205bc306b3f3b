package goal

import (
	"errors"
	"fmt"
)

const (
	MinMinute = 0
	MaxMinute = 130
)

var ErrScorerNotInMatch = errors.New("scorer team is not part of the match")

// Event is one scoring event inside a match's goal ledger. It is exclusively
// owned by its match; retracting the match's goals removes the events.
type Event struct {
	ID            string
	MatchID       string
	CompetitionID string
	ScorerID      string
	ScorerTeamID  string
	Minute        int
	OwnGoal       bool
	Penalty       bool
}

func (e Event) Validate() error {
	if e.MatchID == "" {
		return fmt.Errorf("goal event match id is required")
	}
	if e.ScorerID == "" {
		return fmt.Errorf("goal event scorer id is required")
	}
	if e.ScorerTeamID == "" {
		return fmt.Errorf("goal event scorer team id is required")
	}
	if e.Minute < MinMinute || e.Minute > MaxMinute {
		return fmt.Errorf("goal event minute %d out of range [%d,%d]", e.Minute, MinMinute, MaxMinute)
	}

	return nil
}

// ScoringSide returns the team whose score the event increments: the
// scorer's own team, or the opposing team for an own goal.
func (e Event) ScoringSide(homeTeamID, awayTeamID string) (string, error) {
	switch e.ScorerTeamID {
	case homeTeamID:
		if e.OwnGoal {
			return awayTeamID, nil
		}
		return homeTeamID, nil
	case awayTeamID:
		if e.OwnGoal {
			return homeTeamID, nil
		}
		return awayTeamID, nil
	default:
		return "", fmt.Errorf("%w: team=%s", ErrScorerNotInMatch, e.ScorerTeamID)
	}
}
