package fixture

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Fixture, error)
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	InsertFixtures(ctx context.Context, items []Fixture) error
	CountByCompetition(ctx context.Context, competitionID string) (int, error)
}
