package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/standing"
)

type StandingRepository struct {
	mu                sync.RWMutex
	rowsByCompetition map[string]map[string]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{rowsByCompetition: make(map[string]map[string]standing.Row)}
}

func (r *StandingRepository) ListByCompetition(_ context.Context, competitionID string) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.rowsByCompetition[competitionID]
	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *StandingRepository) UpsertRows(_ context.Context, items []standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.CompetitionID == "" || item.TeamID == "" {
			continue
		}
		rows, ok := r.rowsByCompetition[item.CompetitionID]
		if !ok {
			rows = make(map[string]standing.Row)
			r.rowsByCompetition[item.CompetitionID] = rows
		}
		rows[item.TeamID] = item
	}

	return nil
}
