package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruangliga/competition-engine/internal/domain/player"
	qb "github.com/ruangliga/competition-engine/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, competitionID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("id", playerID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player id=%s: %w", playerID, err)
	}

	return player.Player{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		TeamID:        row.TeamID,
		Name:          row.Name,
	}, true, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, competitionID, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("team_id", teamID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:            row.ID,
			CompetitionID: row.CompetitionID,
			TeamID:        row.TeamID,
			Name:          row.Name,
		})
	}

	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("players").
		Columns("id", "competition_id", "team_id", "name").
		Suffix(`ON CONFLICT (competition_id, id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    name = EXCLUDED.name,
    updated_at = NOW()`)
	for _, item := range items {
		builder.Values(item.ID, item.CompetitionID, item.TeamID, item.Name)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert players query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert players: %w", err)
	}

	return nil
}
