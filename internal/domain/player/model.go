package player

// Player is a registered squad member. The engine consults it only to confirm
// a scorer belongs to one of the two teams in a match.
type Player struct {
	ID            string
	CompetitionID string
	TeamID        string
	Name          string
}
