package player

import "context"

type Repository interface {
	GetByID(ctx context.Context, competitionID, playerID string) (Player, bool, error)
	ListByTeam(ctx context.Context, competitionID, teamID string) ([]Player, error)
	UpsertPlayers(ctx context.Context, items []Player) error
}
