package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/scorer"
	"github.com/ruangliga/competition-engine/internal/platform/cache"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

const (
	defaultTopScorersLimit = 20
	maxTopScorersLimit     = 100
)

type ScorerService struct {
	goalRepo  goal.Repository
	matchRepo match.Repository
	store     *cache.Store
	logger    *logging.Logger
}

func NewScorerService(
	goalRepo goal.Repository,
	matchRepo match.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *ScorerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScorerService{
		goalRepo:  goalRepo,
		matchRepo: matchRepo,
		store:     store,
		logger:    logger,
	}
}

// TopScorersInput scopes the leaderboard to either a whole competition or a
// single match; exactly one of the two must be set.
type TopScorersInput struct {
	CompetitionID string
	MatchID       string
	Limit         int
	Offset        int
	// ExcludeOwnGoals drops own goals from personal tallies. The default
	// counts every event by its scorer regardless of which side it
	// benefited; that asymmetry is deliberate and documented.
	ExcludeOwnGoals bool
}

// TopScorers groups the in-scope goal events by scorer, counts, ranks with
// a deterministic tie-break (player id ascending), and paginates.
func (s *ScorerService) TopScorers(ctx context.Context, input TopScorersInput) ([]scorer.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScorerService.TopScorers")
	defer span.End()

	competitionID := strings.TrimSpace(input.CompetitionID)
	matchID := strings.TrimSpace(input.MatchID)
	if (competitionID == "") == (matchID == "") {
		return nil, fmt.Errorf("%w: exactly one of competition id or match id is required", ErrInvalidInput)
	}
	if input.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultTopScorersLimit
	}
	if limit > maxTopScorersLimit {
		limit = maxTopScorersLimit
	}

	cacheKey := topScorersCacheKey(competitionID, matchID, limit, input.Offset, input.ExcludeOwnGoals)
	if s.store != nil {
		if cached, ok := s.store.Get(ctx, cacheKey); ok {
			if entries, ok := cached.([]scorer.Entry); ok {
				return entries, nil
			}
		}
	}

	var events []goal.Event
	var err error
	if matchID != "" {
		if _, ok, getErr := s.matchRepo.GetByID(ctx, matchID); getErr != nil {
			return nil, fmt.Errorf("get match: %w", getErr)
		} else if !ok {
			return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
		}
		events, err = s.goalRepo.ListByMatch(ctx, matchID)
	} else {
		events, err = s.goalRepo.ListByCompetition(ctx, competitionID)
	}
	if err != nil {
		return nil, fmt.Errorf("list goal events: %w", err)
	}

	counts := make(map[string]int, len(events))
	for _, e := range events {
		if input.ExcludeOwnGoals && e.OwnGoal {
			continue
		}
		counts[e.ScorerID]++
	}

	entries := scorer.Page(scorer.Tally(counts), limit, input.Offset)
	if s.store != nil {
		s.store.Set(ctx, cacheKey, entries)
	}

	return entries, nil
}

func topScorersCacheKey(competitionID, matchID string, limit, offset int, excludeOwnGoals bool) string {
	return "topscorers:" + competitionID + ":" + matchID +
		":" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset) +
		":" + strconv.FormatBool(excludeOwnGoals)
}
