package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
	"github.com/ruangliga/competition-engine/internal/domain/team"
	"github.com/ruangliga/competition-engine/internal/platform/cache"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
	"github.com/ruangliga/competition-engine/internal/platform/resilience"
)

// Per-team folds are independent of each other; this bounds how many run at
// once during a full table rebuild.
const maxRecomputeWorkers = 8

type StandingService struct {
	teamRepo     team.Repository
	matchRepo    match.Repository
	standingRepo standing.Repository
	store        *cache.Store
	flight       resilience.SingleFlight
	logger       *logging.Logger
}

func NewStandingService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	standingRepo standing.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *StandingService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingService{
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		store:        store,
		logger:       logger,
	}
}

// Standings returns the ranked table for a competition. Rank order is always
// derived from the rows' points/goal difference/goals scored, never trusted
// from storage; stored positions are only a cache of this ordering.
func (s *StandingService) Standings(ctx context.Context, competitionID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Standings")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	cacheKey := standingsCacheKey(competitionID)
	if s.store != nil {
		if cached, ok := s.store.Get(ctx, cacheKey); ok {
			if rows, ok := cached.([]standing.Row); ok {
				return rows, nil
			}
		}
	}

	result, err, _ := s.flight.Do(cacheKey, func() (any, error) {
		rows, err := s.standingRepo.ListByCompetition(ctx, competitionID)
		if err != nil {
			return nil, fmt.Errorf("list standings by competition: %w", err)
		}
		if len(rows) == 0 {
			return s.RecomputeAll(ctx, competitionID)
		}
		return standing.Rank(rows), nil
	})
	if err != nil {
		return nil, err
	}

	rows := result.([]standing.Row)
	if s.store != nil {
		s.store.Set(ctx, cacheKey, rows)
	}

	return rows, nil
}

// RecomputeTeams refolds the rows for the given teams only, merges them into
// the stored table, re-ranks, and persists. This is the hot path after a
// single match mutation: two folds plus one in-memory sort, never a
// whole-table refold. It returns the refolded rows with their new positions.
func (s *StandingService) RecomputeTeams(ctx context.Context, competitionID string, teamIDs ...string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecomputeTeams")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if len(teamIDs) == 0 {
		return nil, nil
	}

	refolded := make(map[string]standing.Row, len(teamIDs))
	for _, teamID := range teamIDs {
		row, err := s.recomputeTeam(ctx, competitionID, teamID)
		if err != nil {
			return nil, err
		}
		refolded[teamID] = row
	}

	stored, err := s.standingRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list standings by competition: %w", err)
	}
	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams by competition: %w", err)
	}

	merged := make([]standing.Row, 0, len(teams))
	seen := make(map[string]bool, len(teams))
	for _, row := range stored {
		if fresh, ok := refolded[row.TeamID]; ok {
			row = fresh
		}
		seen[row.TeamID] = true
		merged = append(merged, row)
	}
	for teamID, row := range refolded {
		if !seen[teamID] {
			seen[teamID] = true
			merged = append(merged, row)
		}
	}
	// Teams the stored table does not hold yet (no full rebuild has run) are
	// folded in as well, so the merged table always covers the whole
	// competition and matches what RecomputeAll would produce.
	for _, t := range teams {
		if seen[t.ID] {
			continue
		}
		row, err := s.recomputeTeam(ctx, competitionID, t.ID)
		if err != nil {
			return nil, err
		}
		merged = append(merged, row)
	}

	ranked := standing.Rank(merged)
	if err := s.standingRepo.UpsertRows(ctx, ranked); err != nil {
		return nil, fmt.Errorf("upsert standings: %w", err)
	}
	s.invalidate(ctx, competitionID)

	delta := make([]standing.Row, 0, len(teamIDs))
	for _, row := range ranked {
		if _, ok := refolded[row.TeamID]; ok {
			delta = append(delta, row)
		}
	}

	return delta, nil
}

// RecomputeAll rebuilds every row of the table from the match ledger. The
// result must be identical to what the incremental path maintains; the
// incremental path exists only to avoid doing this on every mutation.
func (s *StandingService) RecomputeAll(ctx context.Context, competitionID string) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.RecomputeAll")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams by competition: %w", err)
	}

	workers := pool.NewWithResults[standing.Row]().
		WithContext(ctx).
		WithMaxGoroutines(maxRecomputeWorkers)
	for _, t := range teams {
		teamID := t.ID
		workers.Go(func(ctx context.Context) (standing.Row, error) {
			return s.recomputeTeam(ctx, competitionID, teamID)
		})
	}

	rows, err := workers.Wait()
	if err != nil {
		return nil, err
	}

	ranked := standing.Rank(rows)
	if err := s.standingRepo.UpsertRows(ctx, ranked); err != nil {
		return nil, fmt.Errorf("upsert standings: %w", err)
	}
	s.invalidate(ctx, competitionID)

	s.logger.InfoContext(ctx, "standings recomputed",
		"competition_id", competitionID,
		"rows", len(ranked),
	)

	return ranked, nil
}

func (s *StandingService) recomputeTeam(ctx context.Context, competitionID, teamID string) (standing.Row, error) {
	matches, err := s.matchRepo.ListFinishedByTeam(ctx, competitionID, teamID)
	if err != nil {
		return standing.Row{}, fmt.Errorf("list finished matches for team %s: %w", teamID, err)
	}

	row, err := standing.ComputeRow(competitionID, teamID, matches)
	if err != nil {
		return standing.Row{}, err
	}
	if err := standing.CheckRow(row); err != nil {
		return standing.Row{}, err
	}

	return row, nil
}

func (s *StandingService) invalidate(ctx context.Context, competitionID string) {
	if s.store == nil {
		return
	}
	s.store.Delete(ctx, standingsCacheKey(competitionID))
}

func standingsCacheKey(competitionID string) string {
	return "standings:" + competitionID
}
