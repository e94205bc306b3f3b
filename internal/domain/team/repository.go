package team

import "context"

// Repository is the TeamSet provider: the ordered competitor list for one
// competition. Order is significant, it seeds the schedule generator.
type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Team, error)
	GetByID(ctx context.Context, competitionID, teamID string) (Team, bool, error)
	UpsertTeams(ctx context.Context, items []Team) error
}
