package postgres

import "time"

type fixtureTableModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	Matchday      int       `db:"matchday"`
	HomeTeamID    string    `db:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id"`
	KickoffAt     time.Time `db:"kickoff_at"`
	CreatedAt     time.Time `db:"created_at"`
}
