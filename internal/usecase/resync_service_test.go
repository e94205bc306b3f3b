package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
)

func TestResyncService_Rebuild_RepairsDriftedScores(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)

	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusFinished)
	seedMatch(t, h, "m2", "team-c", "team-d", match.StatusFinished)

	ledger := []goal.Event{
		{ID: "g1", MatchID: "m1", CompetitionID: testCompetitionID, ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 10},
		{ID: "g2", MatchID: "m1", CompetitionID: testCompetitionID, ScorerID: "team-a-p2", ScorerTeamID: "team-a", Minute: 50},
		{ID: "g3", MatchID: "m2", CompetitionID: testCompetitionID, ScorerID: "team-d-p1", ScorerTeamID: "team-d", Minute: 70},
	}
	for _, e := range ledger {
		if err := h.goals.Insert(context.Background(), e); err != nil {
			t.Fatalf("seed goal: %v", err)
		}
	}

	// Drift m1's stored score away from its ledger; m2 already agrees at 0-1.
	if err := h.matches.UpdateScore(context.Background(), "m1", 7, 7); err != nil {
		t.Fatalf("drift score: %v", err)
	}
	if err := h.matches.UpdateScore(context.Background(), "m2", 0, 1); err != nil {
		t.Fatalf("set m2 score: %v", err)
	}

	result, err := h.resyncSvc.Rebuild(context.Background(), RebuildInput{CompetitionID: testCompetitionID})
	if err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}

	if result.MatchCount != 2 {
		t.Fatalf("expected 2 matches scanned, got %d", result.MatchCount)
	}
	if result.UpdatedCount != 1 {
		t.Fatalf("expected exactly the drifted match to update, got %d", result.UpdatedCount)
	}
	if result.FailedCount != 0 {
		t.Fatalf("expected no failures, got %d", result.FailedCount)
	}
	if result.StandingsRows != 4 {
		t.Fatalf("expected 4 standings rows, got %d", result.StandingsRows)
	}
	if result.WorkerCount != defaultRebuildWorkers {
		t.Fatalf("expected default worker count %d, got %d", defaultRebuildWorkers, result.WorkerCount)
	}

	m, ok, err := h.matches.GetByID(context.Background(), "m1")
	if err != nil || !ok {
		t.Fatalf("get m1: ok=%v err=%v", ok, err)
	}
	if m.HomeScore != 2 || m.AwayScore != 0 {
		t.Fatalf("expected refolded 2-0, got %d-%d", m.HomeScore, m.AwayScore)
	}

	rows, err := h.standings.ListByCompetition(context.Background(), testCompetitionID)
	if err != nil {
		t.Fatalf("list standings: %v", err)
	}
	if len(rows) != 4 || rows[0].Position != 1 {
		t.Fatalf("standings were not rebuilt: %+v", rows)
	}
}

func TestResyncService_Rebuild_WorkerOverride(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusScheduled)

	result, err := h.resyncSvc.Rebuild(context.Background(), RebuildInput{
		CompetitionID: testCompetitionID,
		MaxWorkers:    2,
	})
	if err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}
	if result.WorkerCount != 2 {
		t.Fatalf("expected 2 workers, got %d", result.WorkerCount)
	}
}

func TestResyncService_Rebuild_RequiresCompetition(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)

	if _, err := h.resyncSvc.Rebuild(context.Background(), RebuildInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
