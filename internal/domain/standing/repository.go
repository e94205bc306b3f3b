package standing

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Row, error)
	UpsertRows(ctx context.Context, items []Row) error
}
