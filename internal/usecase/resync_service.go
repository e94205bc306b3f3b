package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

const defaultRebuildWorkers = 4

// ResyncService rebuilds all derived state of a competition from the goal
// ledger: every match score is refolded from its events, then the standings
// table is recomputed from scratch. It exists as the recovery path; normal
// mutations maintain the same state incrementally.
type ResyncService struct {
	matchRepo match.Repository
	goalRepo  goal.Repository
	standings *StandingService
	logger    *logging.Logger
}

func NewResyncService(
	matchRepo match.Repository,
	goalRepo goal.Repository,
	standings *StandingService,
	logger *logging.Logger,
) *ResyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResyncService{
		matchRepo: matchRepo,
		goalRepo:  goalRepo,
		standings: standings,
		logger:    logger,
	}
}

type RebuildInput struct {
	CompetitionID string
	MaxWorkers    int
}

type RebuildResult struct {
	MatchCount    int   `json:"match_count"`
	UpdatedCount  int   `json:"updated_count"`
	FailedCount   int   `json:"failed_count"`
	StandingsRows int   `json:"standings_rows"`
	WorkerCount   int   `json:"worker_count"`
	DurationMs    int64 `json:"duration_ms"`
}

func (s *ResyncService) Rebuild(ctx context.Context, input RebuildInput) (RebuildResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResyncService.Rebuild")
	defer span.End()

	competitionID := strings.TrimSpace(input.CompetitionID)
	if competitionID == "" {
		return RebuildResult{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = defaultRebuildWorkers
	}

	started := time.Now()

	matches, err := s.matchRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("list matches by competition: %w", err)
	}

	workers, err := ants.NewPool(workerCount)
	if err != nil {
		return RebuildResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	updated, failed := 0, 0

	for _, m := range matches {
		m := m
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()

			changed, refoldErr := s.refoldMatch(ctx, m)
			mu.Lock()
			if refoldErr != nil {
				failed++
			} else if changed {
				updated++
			}
			mu.Unlock()

			if refoldErr != nil {
				s.logger.ErrorContext(ctx, "refold match failed",
					"match_id", m.FixtureID,
					"error", refoldErr,
				)
			}
		}); err != nil {
			wg.Done()
			return RebuildResult{}, fmt.Errorf("submit refold task: %w", err)
		}
	}
	wg.Wait()

	if failed > 0 {
		return RebuildResult{}, fmt.Errorf("rebuild refolded %d matches with %d failures", updated, failed)
	}

	rows, err := s.standings.RecomputeAll(ctx, competitionID)
	if err != nil {
		return RebuildResult{}, err
	}

	result := RebuildResult{
		MatchCount:    len(matches),
		UpdatedCount:  updated,
		FailedCount:   failed,
		StandingsRows: len(rows),
		WorkerCount:   workerCount,
		DurationMs:    time.Since(started).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "derived state rebuilt",
		"competition_id", competitionID,
		"matches", result.MatchCount,
		"updated", result.UpdatedCount,
		"duration_ms", result.DurationMs,
	)

	return result, nil
}

func (s *ResyncService) refoldMatch(ctx context.Context, m match.Match) (bool, error) {
	events, err := s.goalRepo.ListByMatch(ctx, m.FixtureID)
	if err != nil {
		return false, fmt.Errorf("list goals by match: %w", err)
	}

	homeScore, awayScore, err := foldScores(m, events)
	if err != nil {
		return false, err
	}
	if homeScore == m.HomeScore && awayScore == m.AwayScore {
		return false, nil
	}

	if err := s.matchRepo.UpdateScore(ctx, m.FixtureID, homeScore, awayScore); err != nil {
		return false, fmt.Errorf("update match score: %w", err)
	}

	return true, nil
}
