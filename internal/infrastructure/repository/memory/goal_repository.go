package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
)

type GoalRepository struct {
	mu         sync.RWMutex
	eventsByID map[string]goal.Event
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{eventsByID: make(map[string]goal.Event)}
}

func (r *GoalRepository) GetByID(_ context.Context, eventID string) (goal.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.eventsByID[eventID]
	return e, ok, nil
}

func (r *GoalRepository) ListByMatch(_ context.Context, matchID string) ([]goal.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]goal.Event, 0)
	for _, e := range r.eventsByID {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	sortEvents(out)

	return out, nil
}

func (r *GoalRepository) ListByCompetition(_ context.Context, competitionID string) ([]goal.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]goal.Event, 0)
	for _, e := range r.eventsByID {
		if e.CompetitionID == competitionID {
			out = append(out, e)
		}
	}
	sortEvents(out)

	return out, nil
}

func (r *GoalRepository) Insert(_ context.Context, item goal.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.eventsByID[item.ID] = item
	return nil
}

func (r *GoalRepository) Update(_ context.Context, item goal.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.eventsByID[item.ID]; ok {
		r.eventsByID[item.ID] = item
	}
	return nil
}

func (r *GoalRepository) Delete(_ context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.eventsByID, eventID)
	return nil
}

func sortEvents(items []goal.Event) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Minute != items[j].Minute {
			return items[i].Minute < items[j].Minute
		}
		return items[i].ID < items[j].ID
	})
}
