package postgres

import "time"

type goalEventTableModel struct {
	ID            string    `db:"id"`
	MatchID       string    `db:"match_id"`
	CompetitionID string    `db:"competition_id"`
	ScorerID      string    `db:"scorer_id"`
	ScorerTeamID  string    `db:"scorer_team_id"`
	Minute        int       `db:"minute"`
	OwnGoal       bool      `db:"own_goal"`
	Penalty       bool      `db:"penalty"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
