package postgres

import "time"

type playerTableModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	TeamID        string    `db:"team_id"`
	Name          string    `db:"name"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
