package goal

import (
	"errors"
	"testing"
)

func TestEventValidate(t *testing.T) {
	t.Parallel()

	valid := Event{MatchID: "m1", ScorerID: "p1", ScorerTeamID: "team-a", Minute: 45}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}

	cases := map[string]Event{
		"missing match":   {ScorerID: "p1", ScorerTeamID: "team-a", Minute: 10},
		"missing scorer":  {MatchID: "m1", ScorerTeamID: "team-a", Minute: 10},
		"missing team":    {MatchID: "m1", ScorerID: "p1", Minute: 10},
		"negative minute": {MatchID: "m1", ScorerID: "p1", ScorerTeamID: "team-a", Minute: -1},
		"minute too high": {MatchID: "m1", ScorerID: "p1", ScorerTeamID: "team-a", Minute: MaxMinute + 1},
	}
	for name, event := range cases {
		if err := event.Validate(); err == nil {
			t.Fatalf("expected %s to fail validation", name)
		}
	}
}

func TestScoringSide(t *testing.T) {
	t.Parallel()

	const home, away = "team-a", "team-b"

	cases := []struct {
		name  string
		event Event
		want  string
	}{
		{"home scorer", Event{ScorerTeamID: home}, home},
		{"away scorer", Event{ScorerTeamID: away}, away},
		{"home own goal credits away", Event{ScorerTeamID: home, OwnGoal: true}, away},
		{"away own goal credits home", Event{ScorerTeamID: away, OwnGoal: true}, home},
	}
	for _, tc := range cases {
		got, err := tc.event.ScoringSide(home, away)
		if err != nil {
			t.Fatalf("%s: ScoringSide error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}

	_, err := Event{ScorerTeamID: "team-c"}.ScoringSide(home, away)
	if !errors.Is(err, ErrScorerNotInMatch) {
		t.Fatalf("expected ErrScorerNotInMatch, got %v", err)
	}
}
