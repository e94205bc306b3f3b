package postgres

import "time"

type standingTableModel struct {
	CompetitionID  string    `db:"competition_id"`
	TeamID         string    `db:"team_id"`
	Position       int       `db:"position"`
	Played         int       `db:"played"`
	Won            int       `db:"won"`
	Draw           int       `db:"draw"`
	Lost           int       `db:"lost"`
	GoalsFor       int       `db:"goals_for"`
	GoalsAgainst   int       `db:"goals_against"`
	GoalDifference int       `db:"goal_difference"`
	Points         int       `db:"points"`
	Form           string    `db:"form"`
	UpdatedAt      time.Time `db:"updated_at"`
}
