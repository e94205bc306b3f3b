package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
	qb "github.com/ruangliga/competition-engine/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListByCompetition(ctx context.Context, competitionID string) ([]standing.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("position", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings by competition: %w", err)
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Row{
			CompetitionID:  row.CompetitionID,
			TeamID:         row.TeamID,
			Position:       row.Position,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Form:           row.Form,
		})
	}

	return out, nil
}

func (r *StandingRepository) UpsertRows(ctx context.Context, items []standing.Row) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("standings").
		Columns("competition_id", "team_id", "position", "played", "won", "draw", "lost",
			"goals_for", "goals_against", "goal_difference", "points", "form").
		Suffix(`ON CONFLICT (competition_id, team_id)
DO UPDATE SET
    position = EXCLUDED.position,
    played = EXCLUDED.played,
    won = EXCLUDED.won,
    draw = EXCLUDED.draw,
    lost = EXCLUDED.lost,
    goals_for = EXCLUDED.goals_for,
    goals_against = EXCLUDED.goals_against,
    goal_difference = EXCLUDED.goal_difference,
    points = EXCLUDED.points,
    form = EXCLUDED.form,
    updated_at = NOW()`)
	for _, item := range items {
		builder.Values(item.CompetitionID, item.TeamID, item.Position, item.Played, item.Won, item.Draw, item.Lost,
			item.GoalsFor, item.GoalsAgainst, item.GoalDifference, item.Points, item.Form)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert standings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standings: %w", err)
	}

	return nil
}
