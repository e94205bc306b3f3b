package postgres

import "time"

type matchTableModel struct {
	FixtureID     string    `db:"fixture_id"`
	CompetitionID string    `db:"competition_id"`
	Matchday      int       `db:"matchday"`
	HomeTeamID    string    `db:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id"`
	HomeScore     int       `db:"home_score"`
	AwayScore     int       `db:"away_score"`
	Status        string    `db:"status"`
	KickoffAt     time.Time `db:"kickoff_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
