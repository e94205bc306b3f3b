package fixture

import "time"

// Fixture is one scheduled pairing: two teams on a given matchday,
// independent of whether the match has been played.
type Fixture struct {
	ID            string
	CompetitionID string
	Matchday      int
	HomeTeamID    string
	AwayTeamID    string
	KickoffAt     time.Time
}
