package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ruangliga/competition-engine/internal/domain/fixture"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/schedule"
	"github.com/ruangliga/competition-engine/internal/domain/team"
	idgen "github.com/ruangliga/competition-engine/internal/platform/id"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

type ScheduleService struct {
	teamRepo    team.Repository
	fixtureRepo fixture.Repository
	matchRepo   match.Repository
	ids         idgen.Generator
	logger      *logging.Logger
}

func NewScheduleService(
	teamRepo team.Repository,
	fixtureRepo fixture.Repository,
	matchRepo match.Repository,
	ids idgen.Generator,
	logger *logging.Logger,
) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScheduleService{
		teamRepo:    teamRepo,
		fixtureRepo: fixtureRepo,
		matchRepo:   matchRepo,
		ids:         ids,
		logger:      logger,
	}
}

// GenerateSchedule builds the single round-robin for a competition from its
// team set, persists the fixtures, and seeds one scheduled match per fixture
// with no score. The team set's order feeds the circle method directly, so
// generation is deterministic for a given competition.
func (s *ScheduleService) GenerateSchedule(ctx context.Context, competitionID string, startDate time.Time) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.GenerateSchedule")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidInput)
	}

	existing, err := s.fixtureRepo.CountByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("count fixtures by competition: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: competition %s already has a schedule", ErrInvalidInput, competitionID)
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams by competition: %w", err)
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	pairings, err := schedule.Generate(teamIDs, startDate)
	if err != nil {
		return nil, err
	}

	fixtures := make([]fixture.Fixture, 0, len(pairings))
	matches := make([]match.Match, 0, len(pairings))
	for _, p := range pairings {
		fixtureID, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate fixture id: %w", err)
		}

		fixtures = append(fixtures, fixture.Fixture{
			ID:            fixtureID,
			CompetitionID: competitionID,
			Matchday:      p.Matchday,
			HomeTeamID:    p.HomeTeamID,
			AwayTeamID:    p.AwayTeamID,
			KickoffAt:     p.KickoffAt,
		})
		matches = append(matches, match.Match{
			FixtureID:     fixtureID,
			CompetitionID: competitionID,
			Matchday:      p.Matchday,
			HomeTeamID:    p.HomeTeamID,
			AwayTeamID:    p.AwayTeamID,
			Status:        match.StatusScheduled,
			KickoffAt:     p.KickoffAt,
		})
	}

	if err := s.fixtureRepo.InsertFixtures(ctx, fixtures); err != nil {
		return nil, fmt.Errorf("insert fixtures: %w", err)
	}
	if err := s.matchRepo.InsertMatches(ctx, matches); err != nil {
		return nil, fmt.Errorf("insert matches: %w", err)
	}

	s.logger.InfoContext(ctx, "schedule generated",
		"competition_id", competitionID,
		"teams", len(teams),
		"fixtures", len(fixtures),
		"rounds", schedule.Rounds(len(teams)),
	)

	return fixtures, nil
}

// ListFixtures returns the persisted schedule for a competition.
func (s *ScheduleService) ListFixtures(ctx context.Context, competitionID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ListFixtures")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by competition: %w", err)
	}

	return fixtures, nil
}
