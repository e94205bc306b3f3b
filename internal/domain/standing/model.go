package standing

// Row is one derived league-table entry. It has no source of truth of its
// own: every field must be reproducible by folding the finished matches of
// its team, and Position by ranking the full table.
type Row struct {
	CompetitionID  string
	TeamID         string
	Position       int
	Played         int
	Won            int
	Draw           int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Form           string
}
