package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/match"
)

type MatchRepository struct {
	mu          sync.RWMutex
	matchesByID map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	matchesByID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		matchesByID[item.FixtureID] = item
	}

	return &MatchRepository{matchesByID: matchesByID}
}

func (r *MatchRepository) GetByID(_ context.Context, fixtureID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matchesByID[fixtureID]
	return m, ok, nil
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matchesByID {
		if m.CompetitionID == competitionID {
			out = append(out, m)
		}
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) ListFinishedByTeam(_ context.Context, competitionID, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matchesByID {
		if m.CompetitionID != competitionID || !m.Involves(teamID) {
			continue
		}
		if match.NormalizeStatus(m.Status) != match.StatusFinished {
			continue
		}
		out = append(out, m)
	}
	sortMatches(out)

	return out, nil
}

func (r *MatchRepository) InsertMatches(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.matchesByID[item.FixtureID] = item
	}

	return nil
}

func (r *MatchRepository) UpdateScore(_ context.Context, fixtureID string, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matchesByID[fixtureID]
	if !ok {
		return fmt.Errorf("update score for %s: %w", fixtureID, match.ErrMatchNotFound)
	}
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	r.matchesByID[fixtureID] = m

	return nil
}

func (r *MatchRepository) UpdateStatus(_ context.Context, fixtureID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matchesByID[fixtureID]
	if !ok {
		return fmt.Errorf("update status for %s: %w", fixtureID, match.ErrMatchNotFound)
	}
	m.Status = match.NormalizeStatus(status)
	r.matchesByID[fixtureID] = m

	return nil
}

func sortMatches(items []match.Match) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].FixtureID < items[j].FixtureID
	})
}
