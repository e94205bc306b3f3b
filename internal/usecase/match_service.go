package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/player"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
	idgen "github.com/ruangliga/competition-engine/internal/platform/id"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
	"github.com/ruangliga/competition-engine/internal/platform/resilience"
)

// MatchService owns the goal ledger and match status. All mutations to one
// match serialize on a per-match lock: each one re-reads the full event list,
// refolds both scores, and stores the result as a single step, so a mutation
// is never left half applied. Mutations on different matches are independent.
type MatchService struct {
	matchRepo  match.Repository
	goalRepo   goal.Repository
	playerRepo player.Repository
	standings  *StandingService
	publisher  UpdatePublisher
	ids        idgen.Generator
	logger     *logging.Logger
	locks      resilience.KeyedMutex
}

func NewMatchService(
	matchRepo match.Repository,
	goalRepo goal.Repository,
	playerRepo player.Repository,
	standings *StandingService,
	publisher UpdatePublisher,
	ids idgen.Generator,
	logger *logging.Logger,
) *MatchService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		goalRepo:   goalRepo,
		playerRepo: playerRepo,
		standings:  standings,
		publisher:  publisher,
		ids:        ids,
		logger:     logger,
	}
}

// MutationResult is what every ledger mutation returns: the match after the
// refold and the standings rows the mutation touched (empty when the match
// is not finished, since only finished matches feed the table).
type MutationResult struct {
	Match          match.Match
	StandingsDelta []standing.Row
}

type RecordGoalInput struct {
	MatchID      string
	ScorerID     string
	ScorerTeamID string
	Minute       int
	OwnGoal      bool
	Penalty      bool
}

type AmendGoalPatch struct {
	ScorerID     *string
	ScorerTeamID *string
	Minute       *int
	OwnGoal      *bool
	Penalty      *bool
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return m, nil
}

func (s *MatchService) ListGoals(ctx context.Context, matchID string) ([]goal.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListGoals")
	defer span.End()

	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	events, err := s.goalRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list goals by match: %w", err)
	}

	return events, nil
}

// RecordGoal validates the event against the match and the player registry,
// appends it to the ledger, and refolds the score. The fold makes the
// operation idempotent under replay: the score is always the event count per
// side, never an increment.
func (s *MatchService) RecordGoal(ctx context.Context, input RecordGoalInput) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordGoal")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return MutationResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return MutationResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	eventID, err := s.ids.NewID()
	if err != nil {
		return MutationResult{}, fmt.Errorf("generate goal event id: %w", err)
	}

	event := goal.Event{
		ID:            eventID,
		MatchID:       matchID,
		CompetitionID: m.CompetitionID,
		ScorerID:      strings.TrimSpace(input.ScorerID),
		ScorerTeamID:  strings.TrimSpace(input.ScorerTeamID),
		Minute:        input.Minute,
		OwnGoal:       input.OwnGoal,
		Penalty:       input.Penalty,
	}
	if err := s.validateEvent(ctx, m, event); err != nil {
		return MutationResult{}, err
	}

	if err := s.goalRepo.Insert(ctx, event); err != nil {
		return MutationResult{}, fmt.Errorf("insert goal event: %w", err)
	}

	return s.refoldAndPublish(ctx, m)
}

// AmendGoal replaces fields of an existing event and refolds. The same
// scorer-membership validation applies to the patched event.
func (s *MatchService) AmendGoal(ctx context.Context, eventID string, patch AmendGoalPatch) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AmendGoal")
	defer span.End()

	event, m, unlock, err := s.lockEvent(ctx, eventID)
	if err != nil {
		return MutationResult{}, err
	}
	defer unlock()

	if patch.ScorerID != nil {
		event.ScorerID = strings.TrimSpace(*patch.ScorerID)
	}
	if patch.ScorerTeamID != nil {
		event.ScorerTeamID = strings.TrimSpace(*patch.ScorerTeamID)
	}
	if patch.Minute != nil {
		event.Minute = *patch.Minute
	}
	if patch.OwnGoal != nil {
		event.OwnGoal = *patch.OwnGoal
	}
	if patch.Penalty != nil {
		event.Penalty = *patch.Penalty
	}

	if err := s.validateEvent(ctx, m, event); err != nil {
		return MutationResult{}, err
	}

	if err := s.goalRepo.Update(ctx, event); err != nil {
		return MutationResult{}, fmt.Errorf("update goal event: %w", err)
	}

	return s.refoldAndPublish(ctx, m)
}

// RetractGoal removes an event and refolds. Recording an event and
// immediately retracting it leaves the match score exactly as it was.
func (s *MatchService) RetractGoal(ctx context.Context, eventID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RetractGoal")
	defer span.End()

	event, m, unlock, err := s.lockEvent(ctx, eventID)
	if err != nil {
		return MutationResult{}, err
	}
	defer unlock()

	if err := s.goalRepo.Delete(ctx, event.ID); err != nil {
		return MutationResult{}, fmt.Errorf("delete goal event: %w", err)
	}

	return s.refoldAndPublish(ctx, m)
}

// SetMatchStatus applies an administrative status transition. Moving into or
// out of FINISHED changes what the standings fold sees, so both teams' rows
// are recomputed on those edges.
func (s *MatchService) SetMatchStatus(ctx context.Context, matchID, status string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetMatchStatus")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MutationResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	status = match.NormalizeStatus(status)
	if !match.IsValidStatus(status) {
		return MutationResult{}, fmt.Errorf("%w: unknown status %s", ErrInvalidInput, status)
	}

	unlock := s.locks.Lock(matchID)
	defer unlock()

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return MutationResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	from := match.NormalizeStatus(m.Status)
	if !match.CanTransition(from, status) {
		return MutationResult{}, fmt.Errorf("%w: %s -> %s", match.ErrInvalidStatusTransition, from, status)
	}

	if err := s.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return MutationResult{}, fmt.Errorf("update match status: %w", err)
	}
	m.Status = status

	result := MutationResult{Match: m}
	if from == match.StatusFinished || status == match.StatusFinished {
		delta, err := s.standings.RecomputeTeams(ctx, m.CompetitionID, m.HomeTeamID, m.AwayTeamID)
		if err != nil {
			return MutationResult{}, err
		}
		result.StandingsDelta = delta
	}

	s.publish(ctx, result)

	return result, nil
}

// lockEvent resolves an event id to its event and match and takes the
// per-match lock. The event is re-read under the lock so a concurrent
// retraction on the same match cannot slip between lookup and mutation.
func (s *MatchService) lockEvent(ctx context.Context, eventID string) (goal.Event, match.Match, func(), error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("%w: goal event id is required", ErrInvalidInput)
	}

	event, ok, err := s.goalRepo.GetByID(ctx, eventID)
	if err != nil {
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("get goal event: %w", err)
	}
	if !ok {
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("%w: goal event=%s", ErrNotFound, eventID)
	}

	unlock := s.locks.Lock(event.MatchID)

	event, ok, err = s.goalRepo.GetByID(ctx, eventID)
	if err != nil {
		unlock()
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("get goal event: %w", err)
	}
	if !ok {
		unlock()
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("%w: goal event=%s", ErrNotFound, eventID)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, event.MatchID)
	if err != nil {
		unlock()
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		unlock()
		return goal.Event{}, match.Match{}, nil, fmt.Errorf("%w: match=%s", ErrNotFound, event.MatchID)
	}

	return event, m, unlock, nil
}

func (s *MatchService) validateEvent(ctx context.Context, m match.Match, event goal.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !m.Involves(event.ScorerTeamID) {
		return fmt.Errorf("%w: team=%s match=%s", goal.ErrScorerNotInMatch, event.ScorerTeamID, m.FixtureID)
	}

	scorer, ok, err := s.playerRepo.GetByID(ctx, m.CompetitionID, event.ScorerID)
	if err != nil {
		return fmt.Errorf("get scorer: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: player=%s", ErrNotFound, event.ScorerID)
	}
	if scorer.TeamID != event.ScorerTeamID {
		return fmt.Errorf("%w: player=%s team=%s", goal.ErrScorerNotInMatch, event.ScorerID, event.ScorerTeamID)
	}

	return nil
}

// refoldAndPublish recomputes the match score from the full event list,
// stores it, recomputes the affected standings rows when the match is
// finished, and pushes the update to subscribers.
func (s *MatchService) refoldAndPublish(ctx context.Context, m match.Match) (MutationResult, error) {
	events, err := s.goalRepo.ListByMatch(ctx, m.FixtureID)
	if err != nil {
		return MutationResult{}, fmt.Errorf("list goals by match: %w", err)
	}

	homeScore, awayScore, err := foldScores(m, events)
	if err != nil {
		return MutationResult{}, err
	}

	if err := s.matchRepo.UpdateScore(ctx, m.FixtureID, homeScore, awayScore); err != nil {
		return MutationResult{}, fmt.Errorf("update match score: %w", err)
	}
	m.HomeScore = homeScore
	m.AwayScore = awayScore

	result := MutationResult{Match: m}
	if match.NormalizeStatus(m.Status) == match.StatusFinished {
		delta, err := s.standings.RecomputeTeams(ctx, m.CompetitionID, m.HomeTeamID, m.AwayTeamID)
		if err != nil {
			return MutationResult{}, err
		}
		result.StandingsDelta = delta
	}

	s.publish(ctx, result)

	return result, nil
}

func (s *MatchService) publish(ctx context.Context, result MutationResult) {
	err := s.publisher.PublishMatchUpdate(ctx, MatchUpdate{
		CompetitionID:  result.Match.CompetitionID,
		Match:          result.Match,
		StandingsDelta: result.StandingsDelta,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "publish match update failed",
			"match_id", result.Match.FixtureID,
			"error", err,
		)
	}
}

// foldScores derives both scores from the event list. Events were validated
// against the match at insertion, so a foreign team here is a corrupted
// ledger, not caller error.
func foldScores(m match.Match, events []goal.Event) (int, int, error) {
	homeScore, awayScore := 0, 0
	for _, e := range events {
		side, err := e.ScoringSide(m.HomeTeamID, m.AwayTeamID)
		if err != nil {
			return 0, 0, crerr.AssertionFailedf(
				"goal event %s references team %s outside match %s", e.ID, e.ScorerTeamID, m.FixtureID)
		}
		if side == m.HomeTeamID {
			homeScore++
		} else {
			awayScore++
		}
	}

	return homeScore, awayScore, nil
}
