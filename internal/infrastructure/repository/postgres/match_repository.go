package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	qb "github.com/ruangliga/competition-engine/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, fixtureID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match id=%s: %w", fixtureID, err)
	}

	return matchFromTable(row), true, nil
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("kickoff_at", "fixture_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by competition query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by competition: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}

	return out, nil
}

func (r *MatchRepository) ListFinishedByTeam(ctx context.Context, competitionID, teamID string) ([]match.Match, error) {
	// Kickoff order matters here, standing form strings read newest last.
	query := `SELECT * FROM matches
WHERE competition_id = $1
  AND status = $2
  AND (home_team_id = $3 OR away_team_id = $3)
ORDER BY kickoff_at, fixture_id`

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, competitionID, match.StatusFinished, teamID); err != nil {
		return nil, fmt.Errorf("select finished matches by team: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTable(row))
	}

	return out, nil
}

func (r *MatchRepository) InsertMatches(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	builder := qb.InsertInto("matches").
		Columns("fixture_id", "competition_id", "matchday", "home_team_id", "away_team_id", "home_score", "away_score", "status", "kickoff_at")
	for _, item := range items {
		builder.Values(item.FixtureID, item.CompetitionID, item.Matchday, item.HomeTeamID, item.AwayTeamID,
			item.HomeScore, item.AwayScore, match.NormalizeStatus(item.Status), item.KickoffAt)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert matches query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert matches: %w", err)
	}

	return nil
}

func (r *MatchRepository) UpdateScore(ctx context.Context, fixtureID string, homeScore, awayScore int) error {
	query, args, err := qb.Update("matches").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match score query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match score id=%s: %w", fixtureID, err)
	}

	return requireMatchRow(result, fixtureID)
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, fixtureID, status string) error {
	query, args, err := qb.Update("matches").
		Set("status", match.NormalizeStatus(status)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("fixture_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match status query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match status id=%s: %w", fixtureID, err)
	}

	return requireMatchRow(result, fixtureID)
}

// requireMatchRow turns a zero-row UPDATE into the repository's not-found
// contract, keeping parity with the in-memory provider.
func requireMatchRow(result sql.Result, fixtureID string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", fixtureID, err)
	}
	if affected == 0 {
		return fmt.Errorf("match %s: %w", fixtureID, match.ErrMatchNotFound)
	}
	return nil
}

func matchFromTable(row matchTableModel) match.Match {
	return match.Match{
		FixtureID:     row.FixtureID,
		CompetitionID: row.CompetitionID,
		Matchday:      row.Matchday,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeScore:     row.HomeScore,
		AwayScore:     row.AwayScore,
		Status:        row.Status,
		KickoffAt:     row.KickoffAt,
	}
}
