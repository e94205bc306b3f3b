package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruangliga/competition-engine/internal/domain/fixture"
	qb "github.com/ruangliga/competition-engine/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByCompetition(ctx context.Context, competitionID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("matchday", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by competition query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by competition: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromTable(row))
	}

	return out, nil
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture id=%s: %w", fixtureID, err)
	}

	return fixtureFromTable(row), true, nil
}

func (r *FixtureRepository) InsertFixtures(ctx context.Context, items []fixture.Fixture) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("fixtures").
		Columns("id", "competition_id", "matchday", "home_team_id", "away_team_id", "kickoff_at")
	for _, item := range items {
		builder.Values(item.ID, item.CompetitionID, item.Matchday, item.HomeTeamID, item.AwayTeamID, item.KickoffAt)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert fixtures query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixtures: %w", err)
	}

	return nil
}

func (r *FixtureRepository) CountByCompetition(ctx context.Context, competitionID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("fixtures").
		Where(qb.Eq("competition_id", competitionID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count fixtures query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count fixtures by competition: %w", err)
	}

	return count, nil
}

func fixtureFromTable(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		Matchday:      row.Matchday,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		KickoffAt:     row.KickoffAt,
	}
}
