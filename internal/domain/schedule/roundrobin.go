package schedule

import (
	"errors"
	"time"
)

var ErrInvalidTeamCount = errors.New("schedule requires at least two teams")

// Pairing is one generated fixture slot: two teams on a matchday. Fixture
// identity and persistence are the caller's concern.
type Pairing struct {
	Matchday   int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
}

// Generate produces a single round-robin for the given ordered team list
// using the circle method: one team (the last) is anchored, the rest rotate.
// For odd team counts the anchor slot is a bye, so each round has
// floor(N/2) pairings and the schedule spans N rounds instead of N-1.
//
// Home assignment follows the Berger convention: in each rotating pair the
// leading rotor hosts, and the anchor alternates sides every round. That
// keeps every team's home count within one of its away count.
//
// Rounds are played weekly starting at startDate; time of day is whatever
// the caller puts in startDate.
func Generate(teamIDs []string, startDate time.Time) ([]Pairing, error) {
	count := len(teamIDs)
	if count < 2 {
		return nil, ErrInvalidTeamCount
	}

	bye := count%2 == 1
	slots := count
	if bye {
		slots++
	}
	rotors := slots - 1 // rotating labels 0..rotors-1; slot rotors-1+1 is the anchor

	out := make([]Pairing, 0, count*(count-1)/2)
	for round := 0; round < rotors; round++ {
		matchday := round + 1
		kickoff := startDate.AddDate(0, 0, round*7)

		if !bye {
			// Anchor plays the rotor that reached the opposite position.
			opponent := round % rotors
			pairing := Pairing{
				Matchday:   matchday,
				HomeTeamID: teamIDs[count-1],
				AwayTeamID: teamIDs[opponent],
				KickoffAt:  kickoff,
			}
			if round%2 == 1 {
				pairing.HomeTeamID, pairing.AwayTeamID = pairing.AwayTeamID, pairing.HomeTeamID
			}
			out = append(out, pairing)
		}

		for k := 1; k <= slots/2-1; k++ {
			lead := (round + k) % rotors
			trail := (round - k + rotors) % rotors
			out = append(out, Pairing{
				Matchday:   matchday,
				HomeTeamID: teamIDs[lead],
				AwayTeamID: teamIDs[trail],
				KickoffAt:  kickoff,
			})
		}
	}

	return out, nil
}

// Rounds reports how many matchdays a generated schedule spans for the given
// team count: N-1 for even N, N for odd N (every team sits out once).
func Rounds(teamCount int) int {
	if teamCount < 2 {
		return 0
	}
	if teamCount%2 == 1 {
		return teamCount
	}
	return teamCount - 1
}
