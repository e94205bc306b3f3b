package usecase

import (
	"context"

	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
)

// MatchUpdate is the payload pushed to subscribers after a ledger mutation:
// the match's current state plus the standings rows it touched.
type MatchUpdate struct {
	CompetitionID  string         `json:"competition_id"`
	Match          match.Match    `json:"match"`
	StandingsDelta []standing.Row `json:"standings_delta,omitempty"`
}

// UpdatePublisher pushes match updates to an external subscriber. Publishing
// is best effort; the ledger mutation is already committed when it runs.
type UpdatePublisher interface {
	PublishMatchUpdate(ctx context.Context, update MatchUpdate) error
}

type NopPublisher struct{}

func (NopPublisher) PublishMatchUpdate(context.Context, MatchUpdate) error { return nil }
