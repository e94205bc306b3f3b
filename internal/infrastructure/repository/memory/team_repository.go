package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/team"
)

// competitionTeams keeps insertion order alongside an ID index, so schedule
// generation sees teams in a stable order while lookups stay O(1).
type competitionTeams struct {
	order []string
	byID  map[string]team.Team
}

func (c *competitionTeams) put(t team.Team) {
	if _, exists := c.byID[t.ID]; !exists {
		c.order = append(c.order, t.ID)
	}
	c.byID[t.ID] = t
}

type TeamRepository struct {
	mu           sync.RWMutex
	competitions map[string]*competitionTeams
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{competitions: make(map[string]*competitionTeams)}
	for _, t := range teams {
		r.bucket(t.CompetitionID).put(t)
	}
	return r
}

func (r *TeamRepository) bucket(competitionID string) *competitionTeams {
	c, ok := r.competitions[competitionID]
	if !ok {
		c = &competitionTeams{byID: make(map[string]team.Team)}
		r.competitions[competitionID] = c
	}
	return c
}

func (r *TeamRepository) ListByCompetition(_ context.Context, competitionID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.competitions[competitionID]
	if !ok {
		return []team.Team{}, nil
	}

	out := make([]team.Team, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, competitionID, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.competitions[competitionID]; ok {
		if t, found := c.byID[teamID]; found {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if strings.TrimSpace(item.CompetitionID) == "" || strings.TrimSpace(item.ID) == "" {
			continue
		}
		r.bucket(item.CompetitionID).put(item)
	}
	return nil
}
