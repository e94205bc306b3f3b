package goal

import "context"

type Repository interface {
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	// ListByMatch returns events ordered by minute then id; the score fold
	// itself is order independent, the order is for presentation.
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Event, error)
	Insert(ctx context.Context, item Event) error
	Update(ctx context.Context, item Event) error
	Delete(ctx context.Context, eventID string) error
}
