package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/fixture"
)

type FixtureRepository struct {
	mu                    sync.RWMutex
	fixturesByCompetition map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesByCompetition := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesByCompetition[item.CompetitionID] = append(fixturesByCompetition[item.CompetitionID], item)
	}

	return &FixtureRepository{fixturesByCompetition: fixturesByCompetition}
}

func (r *FixtureRepository) ListByCompetition(_ context.Context, competitionID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesByCompetition[competitionID]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Matchday != out[j].Matchday {
			return out[i].Matchday < out[j].Matchday
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, items := range r.fixturesByCompetition {
		for _, item := range items {
			if item.ID == fixtureID {
				return item, true, nil
			}
		}
	}

	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) InsertFixtures(_ context.Context, items []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.fixturesByCompetition[item.CompetitionID] = append(r.fixturesByCompetition[item.CompetitionID], item)
	}

	return nil
}

func (r *FixtureRepository) CountByCompetition(_ context.Context, competitionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.fixturesByCompetition[competitionID]), nil
}
