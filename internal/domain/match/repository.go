package match

import "context"

type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Match, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Match, error)
	// ListFinishedByTeam returns the team's finished matches ordered by
	// kickoff time ascending; form derivation relies on that order.
	ListFinishedByTeam(ctx context.Context, competitionID, teamID string) ([]Match, error)
	InsertMatches(ctx context.Context, items []Match) error
	// UpdateScore and UpdateStatus return ErrMatchNotFound when no match
	// with the given fixture ID exists.
	UpdateScore(ctx context.Context, fixtureID string, homeScore, awayScore int) error
	UpdateStatus(ctx context.Context, fixtureID, status string) error
}
