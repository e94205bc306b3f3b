package memory

import (
	"context"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/player"
)

type PlayerRepository struct {
	mu                   sync.RWMutex
	playersByCompetition map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	playersByCompetition := make(map[string][]player.Player)
	for _, item := range players {
		playersByCompetition[item.CompetitionID] = append(playersByCompetition[item.CompetitionID], item)
	}

	return &PlayerRepository{playersByCompetition: playersByCompetition}
}

func (r *PlayerRepository) GetByID(_ context.Context, competitionID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.playersByCompetition[competitionID] {
		if item.ID == playerID {
			return item, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, competitionID, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.playersByCompetition[competitionID] {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.CompetitionID == "" || item.ID == "" {
			continue
		}

		rows := r.playersByCompetition[item.CompetitionID]
		updated := false
		for idx := range rows {
			if rows[idx].ID == item.ID {
				rows[idx] = item
				updated = true
				break
			}
		}
		if !updated {
			rows = append(rows, item)
		}
		r.playersByCompetition[item.CompetitionID] = rows
	}

	return nil
}
