package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ruangliga/competition-engine/internal/domain/match"
)

func TestMatchRepository_UpdatesRequireExistingMatch(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository([]match.Match{{
		FixtureID:     "m1",
		CompetitionID: "comp-1",
		HomeTeamID:    "team-a",
		AwayTeamID:    "team-b",
		Status:        match.StatusLive,
		KickoffAt:     time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC),
	}})

	if err := repo.UpdateScore(context.Background(), "ghost", 1, 0); !errors.Is(err, match.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound for unknown score update, got %v", err)
	}
	if err := repo.UpdateStatus(context.Background(), "ghost", match.StatusFinished); !errors.Is(err, match.ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound for unknown status update, got %v", err)
	}

	if err := repo.UpdateScore(context.Background(), "m1", 2, 1); err != nil {
		t.Fatalf("UpdateScore error: %v", err)
	}
	if err := repo.UpdateStatus(context.Background(), "m1", "finished"); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	m, ok, err := repo.GetByID(context.Background(), "m1")
	if err != nil || !ok {
		t.Fatalf("GetByID: ok=%v err=%v", ok, err)
	}
	if m.HomeScore != 2 || m.AwayScore != 1 || m.Status != match.StatusFinished {
		t.Fatalf("unexpected match state: %+v", m)
	}
}
