package match

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid match status transition")

	// ErrMatchNotFound is returned by repository writes that target a
	// fixture ID with no ledger entry.
	ErrMatchNotFound = errors.New("match not found")
)

// Match is the mutable ledger entry for one fixture. Scores are derived from
// the goal event list and written back as a whole; they are never incremented
// or decremented in place.
type Match struct {
	FixtureID     string
	CompetitionID string
	Matchday      int
	HomeTeamID    string
	AwayTeamID    string
	HomeScore     int
	AwayScore     int
	Status        string
	KickoffAt     time.Time
}

func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the administrative move from one status to
// another is allowed. Finished is terminal; re-opening a finished match is an
// administrative correction handled outside the engine, so the field itself
// stays writable at the persistence layer.
func CanTransition(from, to string) bool {
	from = NormalizeStatus(from)
	to = NormalizeStatus(to)
	if from == to {
		return true
	}

	switch from {
	case StatusScheduled:
		return to == StatusLive || to == StatusPostponed || to == StatusCancelled
	case StatusLive:
		return to == StatusFinished || to == StatusPostponed || to == StatusCancelled
	case StatusPostponed:
		return to == StatusScheduled || to == StatusLive || to == StatusCancelled
	default:
		return false
	}
}
