package memory

import (
	"context"
	"testing"
)

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	teams, players := SeedDemo()

	if len(teams) != 6 {
		t.Fatalf("expected 6 demo teams, got %d", len(teams))
	}
	if len(players) != len(teams)*4 {
		t.Fatalf("expected 4 players per team, got %d", len(players))
	}

	teamIDs := make(map[string]bool, len(teams))
	for _, item := range teams {
		if item.CompetitionID != DemoCompetitionID {
			t.Fatalf("team %s belongs to %s", item.ID, item.CompetitionID)
		}
		if err := item.Validate(); err != nil {
			t.Fatalf("invalid demo team: %v", err)
		}
		teamIDs[item.ID] = true
	}
	for _, item := range players {
		if !teamIDs[item.TeamID] {
			t.Fatalf("player %s references unknown team %s", item.ID, item.TeamID)
		}
	}

	// Seeded repositories answer competition-scoped queries.
	repo := NewTeamRepository(teams)
	listed, err := repo.ListByCompetition(context.Background(), DemoCompetitionID)
	if err != nil {
		t.Fatalf("ListByCompetition error: %v", err)
	}
	if len(listed) != len(teams) {
		t.Fatalf("expected %d teams, got %d", len(teams), len(listed))
	}
}
