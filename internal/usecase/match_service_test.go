package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
)

func seedMatch(t *testing.T, h *engineHarness, fixtureID, home, away, status string) match.Match {
	t.Helper()

	m := match.Match{
		FixtureID:     fixtureID,
		CompetitionID: testCompetitionID,
		Matchday:      1,
		HomeTeamID:    home,
		AwayTeamID:    away,
		Status:        status,
		KickoffAt:     time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC),
	}
	if err := h.matches.InsertMatches(context.Background(), []match.Match{m}); err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}

func TestMatchService_RecordGoal_FoldsScore(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusLive)

	result, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:      "m1",
		ScorerID:     "team-a-p1",
		ScorerTeamID: "team-a",
		Minute:       12,
	})
	if err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if result.Match.HomeScore != 1 || result.Match.AwayScore != 0 {
		t.Fatalf("expected 1-0, got %d-%d", result.Match.HomeScore, result.Match.AwayScore)
	}
	if len(result.StandingsDelta) != 0 {
		t.Fatalf("live match must not touch standings, got %d rows", len(result.StandingsDelta))
	}
	if h.published.count() != 1 {
		t.Fatalf("expected 1 published update, got %d", h.published.count())
	}

	result, err = h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:      "m1",
		ScorerID:     "team-b-p1",
		ScorerTeamID: "team-b",
		Minute:       30,
		Penalty:      true,
	})
	if err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if result.Match.HomeScore != 1 || result.Match.AwayScore != 1 {
		t.Fatalf("expected 1-1, got %d-%d", result.Match.HomeScore, result.Match.AwayScore)
	}
}

func TestMatchService_RecordGoal_OwnGoalCreditsOpposition(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusLive)

	result, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID:      "m1",
		ScorerID:     "team-b-p2",
		ScorerTeamID: "team-b",
		Minute:       55,
		OwnGoal:      true,
	})
	if err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if result.Match.HomeScore != 1 || result.Match.AwayScore != 0 {
		t.Fatalf("own goal by away must score 1-0, got %d-%d", result.Match.HomeScore, result.Match.AwayScore)
	}
}

func TestMatchService_RecordThenRetract_RestoresScore(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusLive)

	if _, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 10,
	}); err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if _, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-a-p2", ScorerTeamID: "team-a", Minute: 40,
	}); err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}

	events, err := h.matchSvc.ListGoals(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListGoals error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	result, err := h.matchSvc.RetractGoal(context.Background(), events[1].ID)
	if err != nil {
		t.Fatalf("RetractGoal error: %v", err)
	}
	if result.Match.HomeScore != 1 || result.Match.AwayScore != 0 {
		t.Fatalf("expected 1-0 after retraction, got %d-%d", result.Match.HomeScore, result.Match.AwayScore)
	}

	events, err = h.matchSvc.ListGoals(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListGoals error: %v", err)
	}
	if len(events) != 1 || events[0].Minute != 10 {
		t.Fatalf("expected the minute-10 event to remain, got %+v", events)
	}
}

func TestMatchService_AmendGoal(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusLive)

	recorded, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 10,
	})
	if err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if recorded.Match.HomeScore != 1 || recorded.Match.AwayScore != 0 {
		t.Fatalf("expected 1-0, got %d-%d", recorded.Match.HomeScore, recorded.Match.AwayScore)
	}

	events, err := h.matchSvc.ListGoals(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListGoals error: %v", err)
	}

	// Flipping the event to an own goal moves the goal across the scoreline.
	ownGoal := true
	minute := 11
	amended, err := h.matchSvc.AmendGoal(context.Background(), events[0].ID, AmendGoalPatch{
		OwnGoal: &ownGoal,
		Minute:  &minute,
	})
	if err != nil {
		t.Fatalf("AmendGoal error: %v", err)
	}
	if amended.Match.HomeScore != 0 || amended.Match.AwayScore != 1 {
		t.Fatalf("expected 0-1 after own-goal amendment, got %d-%d", amended.Match.HomeScore, amended.Match.AwayScore)
	}

	events, err = h.matchSvc.ListGoals(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListGoals error: %v", err)
	}
	if events[0].Minute != 11 || !events[0].OwnGoal {
		t.Fatalf("amendment was not stored: %+v", events[0])
	}
}

func TestMatchService_RecordGoal_ScorerMustBelongToMatch(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusLive)

	// team-c is a real team, just not in this match.
	_, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-c-p1", ScorerTeamID: "team-c", Minute: 20,
	})
	if !errors.Is(err, goal.ErrScorerNotInMatch) {
		t.Fatalf("expected ErrScorerNotInMatch, got %v", err)
	}

	// A registered player listed under the wrong side is also rejected.
	_, err = h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-b-p1", ScorerTeamID: "team-a", Minute: 20,
	})
	if !errors.Is(err, goal.ErrScorerNotInMatch) {
		t.Fatalf("expected ErrScorerNotInMatch for wrong side, got %v", err)
	}

	_, err = h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "nobody", ScorerTeamID: "team-a", Minute: 20,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestMatchService_RecordGoal_UnknownMatch(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)

	_, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "ghost", ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 20,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMatchService_SetMatchStatus_Transitions(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusScheduled)

	// Scheduled matches cannot jump straight to finished.
	_, err := h.matchSvc.SetMatchStatus(context.Background(), "m1", match.StatusFinished)
	if !errors.Is(err, match.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	result, err := h.matchSvc.SetMatchStatus(context.Background(), "m1", "live")
	if err != nil {
		t.Fatalf("SetMatchStatus error: %v", err)
	}
	if result.Match.Status != match.StatusLive {
		t.Fatalf("expected LIVE, got %s", result.Match.Status)
	}
	if len(result.StandingsDelta) != 0 {
		t.Fatalf("going live must not touch standings, got %d rows", len(result.StandingsDelta))
	}

	result, err = h.matchSvc.SetMatchStatus(context.Background(), "m1", match.StatusFinished)
	if err != nil {
		t.Fatalf("SetMatchStatus error: %v", err)
	}
	if len(result.StandingsDelta) != 2 {
		t.Fatalf("finishing must recompute both teams, got %d rows", len(result.StandingsDelta))
	}

	_, err = h.matchSvc.SetMatchStatus(context.Background(), "m1", "ABANDONED")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
}

func TestMatchService_GoalOnFinishedMatch_UpdatesStandings(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusFinished)

	result, err := h.matchSvc.RecordGoal(context.Background(), RecordGoalInput{
		MatchID: "m1", ScorerID: "team-a-p1", ScorerTeamID: "team-a", Minute: 90,
	})
	if err != nil {
		t.Fatalf("RecordGoal error: %v", err)
	}
	if len(result.StandingsDelta) != 2 {
		t.Fatalf("expected both rows in the delta, got %d", len(result.StandingsDelta))
	}

	var winner, loser bool
	for _, row := range result.StandingsDelta {
		switch row.TeamID {
		case "team-a":
			winner = row.Won == 1 && row.Points == 3 && row.Form == "W"
		case "team-b":
			loser = row.Lost == 1 && row.Points == 0 && row.Form == "L"
		}
	}
	if !winner || !loser {
		t.Fatalf("unexpected standings delta: %+v", result.StandingsDelta)
	}

	update, ok := h.published.last()
	if !ok {
		t.Fatal("expected a published update")
	}
	if update.CompetitionID != testCompetitionID || len(update.StandingsDelta) != 2 {
		t.Fatalf("unexpected published update: %+v", update)
	}
}

func TestMatchService_GetMatch(t *testing.T) {
	t.Parallel()

	teams, players := fourTeams()
	h := newEngineHarness(teams, players)
	seedMatch(t, h, "m1", "team-a", "team-b", match.StatusScheduled)

	m, err := h.matchSvc.GetMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetMatch error: %v", err)
	}
	if m.HomeTeamID != "team-a" || m.AwayTeamID != "team-b" {
		t.Fatalf("unexpected match: %+v", m)
	}

	if _, err := h.matchSvc.GetMatch(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := h.matchSvc.GetMatch(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
