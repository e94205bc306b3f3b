package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
)

func seedGoalLedger(t *testing.T, h *engineHarness) {
	t.Helper()

	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusFinished)
	seedMatch(t, h, "m2", "team-c", "team-d", match.StatusFinished)

	events := []goal.Event{
		{ID: "g1", MatchID: "m1", CompetitionID: testCompetitionID, ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 5},
		{ID: "g2", MatchID: "m1", CompetitionID: testCompetitionID, ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 30},
		{ID: "g3", MatchID: "m1", CompetitionID: testCompetitionID, ScorerID: "team-b-p1", ScorerTeamID: "team-b", Minute: 60},
		{ID: "g4", MatchID: "m2", CompetitionID: testCompetitionID, ScorerID: "team-c-p1", ScorerTeamID: "team-c", Minute: 15},
		{ID: "g5", MatchID: "m2", CompetitionID: testCompetitionID, ScorerID: "team-a-p1", ScorerTeamID: "team-c", Minute: 70},
		{ID: "g6", MatchID: "m2", CompetitionID: testCompetitionID, ScorerID: "team-d-p1", ScorerTeamID: "team-d", Minute: 80, OwnGoal: true},
	}
	for _, e := range events {
		if err := h.goals.Insert(context.Background(), e); err != nil {
			t.Fatalf("seed goal %s: %v", e.ID, err)
		}
	}
}

func TestScorerService_TopScorers_CompetitionScope(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedGoalLedger(t, h)

	entries, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		CompetitionID: testCompetitionID,
	})
	if err != nil {
		t.Fatalf("TopScorers error: %v", err)
	}

	if len(entries) != 4 {
		t.Fatalf("expected 4 scorers, got %d", len(entries))
	}
	if entries[0].PlayerID != "team-a-p1" || entries[0].Goals != 3 {
		t.Fatalf("unexpected top scorer: %+v", entries[0])
	}
	// One goal each; player id breaks the tie.
	if entries[1].PlayerID != "team-b-p1" || entries[2].PlayerID != "team-c-p1" || entries[3].PlayerID != "team-d-p1" {
		t.Fatalf("unexpected tie-break order: %+v", entries)
	}
}

func TestScorerService_TopScorers_ExcludeOwnGoals(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedGoalLedger(t, h)

	entries, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		CompetitionID:   testCompetitionID,
		ExcludeOwnGoals: true,
	})
	if err != nil {
		t.Fatalf("TopScorers error: %v", err)
	}

	for _, e := range entries {
		if e.PlayerID == "team-d-p1" {
			t.Fatalf("own-goal-only scorer should be excluded: %+v", entries)
		}
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 scorers, got %d", len(entries))
	}
}

func TestScorerService_TopScorers_MatchScope(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedGoalLedger(t, h)

	entries, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		MatchID: "m1",
	})
	if err != nil {
		t.Fatalf("TopScorers error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 scorers in m1, got %d", len(entries))
	}
	if entries[0].PlayerID != "team-a-p1" || entries[0].Goals != 2 {
		t.Fatalf("unexpected match top scorer: %+v", entries[0])
	}

	if _, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{MatchID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}
}

func TestScorerService_TopScorers_Pagination(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedGoalLedger(t, h)

	entries, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		CompetitionID: testCompetitionID,
		Limit:         2,
		Offset:        1,
	})
	if err != nil {
		t.Fatalf("TopScorers error: %v", err)
	}
	if len(entries) != 2 || entries[0].PlayerID != "team-b-p1" || entries[1].PlayerID != "team-c-p1" {
		t.Fatalf("unexpected page: %+v", entries)
	}
}

func TestScorerService_TopScorers_ScopeValidation(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)

	if _, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for no scope, got %v", err)
	}
	if _, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		CompetitionID: testCompetitionID,
		MatchID:       "m1",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for both scopes, got %v", err)
	}
	if _, err := h.scorerSvc.TopScorers(context.Background(), TopScorersInput{
		CompetitionID: testCompetitionID,
		Offset:        -1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got %v", err)
	}
}
