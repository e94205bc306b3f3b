package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruangliga/competition-engine/internal/domain/goal"
	qb "github.com/ruangliga/competition-engine/internal/platform/querybuilder"
)

type GoalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) GetByID(ctx context.Context, eventID string) (goal.Event, bool, error) {
	query, args, err := qb.Select("*").From("goal_events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return goal.Event{}, false, fmt.Errorf("build select goal event query: %w", err)
	}

	var row goalEventTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return goal.Event{}, false, nil
		}
		return goal.Event{}, false, fmt.Errorf("select goal event id=%s: %w", eventID, err)
	}

	return goalEventFromTable(row), true, nil
}

func (r *GoalRepository) ListByMatch(ctx context.Context, matchID string) ([]goal.Event, error) {
	query, args, err := qb.Select("*").From("goal_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goal events by match query: %w", err)
	}

	var rows []goalEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goal events by match: %w", err)
	}

	out := make([]goal.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalEventFromTable(row))
	}

	return out, nil
}

func (r *GoalRepository) ListByCompetition(ctx context.Context, competitionID string) ([]goal.Event, error) {
	query, args, err := qb.Select("*").From("goal_events").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goal events by competition query: %w", err)
	}

	var rows []goalEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goal events by competition: %w", err)
	}

	out := make([]goal.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, goalEventFromTable(row))
	}

	return out, nil
}

func (r *GoalRepository) Insert(ctx context.Context, item goal.Event) error {
	query, args, err := qb.InsertInto("goal_events").
		Columns("id", "match_id", "competition_id", "scorer_id", "scorer_team_id", "minute", "own_goal", "penalty").
		Values(item.ID, item.MatchID, item.CompetitionID, item.ScorerID, item.ScorerTeamID, item.Minute, item.OwnGoal, item.Penalty).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert goal event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert goal event id=%s: %w", item.ID, err)
	}

	return nil
}

func (r *GoalRepository) Update(ctx context.Context, item goal.Event) error {
	query, args, err := qb.Update("goal_events").
		Set("scorer_id", item.ScorerID).
		Set("scorer_team_id", item.ScorerTeamID).
		Set("minute", item.Minute).
		Set("own_goal", item.OwnGoal).
		Set("penalty", item.Penalty).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update goal event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update goal event id=%s: %w", item.ID, err)
	}

	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, eventID string) error {
	query, args, err := qb.DeleteFrom("goal_events").
		Where(qb.Eq("id", eventID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete goal event query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete goal event id=%s: %w", eventID, err)
	}

	return nil
}

func goalEventFromTable(row goalEventTableModel) goal.Event {
	return goal.Event{
		ID:            row.ID,
		MatchID:       row.MatchID,
		CompetitionID: row.CompetitionID,
		ScorerID:      row.ScorerID,
		ScorerTeamID:  row.ScorerTeamID,
		Minute:        row.Minute,
		OwnGoal:       row.OwnGoal,
		Penalty:       row.Penalty,
	}
}
