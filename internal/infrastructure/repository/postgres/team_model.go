package postgres

import "time"

type teamTableModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	Name          string    `db:"name"`
	Short         string    `db:"short"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
