package match

import "testing"

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":           StatusScheduled,
		"  ":         StatusScheduled,
		"live":       StatusLive,
		" Finished ": StatusFinished,
		"POSTPONED":  StatusPostponed,
		"ft":         "FT",
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []string{StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled, "live", ""} {
		if !IsValidStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	for _, status := range []string{"FT", "HT", "ABANDONED"} {
		if IsValidStatus(status) {
			t.Fatalf("expected %q to be invalid", status)
		}
	}
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := [][2]string{
		{StatusScheduled, StatusLive},
		{StatusScheduled, StatusPostponed},
		{StatusScheduled, StatusCancelled},
		{StatusLive, StatusFinished},
		{StatusLive, StatusPostponed},
		{StatusLive, StatusCancelled},
		{StatusPostponed, StatusScheduled},
		{StatusPostponed, StatusLive},
		{StatusPostponed, StatusCancelled},
		{StatusFinished, StatusFinished},
		{StatusLive, StatusLive},
	}
	for _, tc := range allowed {
		if !CanTransition(tc[0], tc[1]) {
			t.Fatalf("expected %s -> %s to be allowed", tc[0], tc[1])
		}
	}

	denied := [][2]string{
		{StatusScheduled, StatusFinished},
		{StatusFinished, StatusLive},
		{StatusFinished, StatusScheduled},
		{StatusCancelled, StatusScheduled},
		{StatusCancelled, StatusLive},
		{StatusPostponed, StatusFinished},
	}
	for _, tc := range denied {
		if CanTransition(tc[0], tc[1]) {
			t.Fatalf("expected %s -> %s to be denied", tc[0], tc[1])
		}
	}

	// Case-insensitive input goes through normalization first.
	if !CanTransition("scheduled", "live") {
		t.Fatal("expected lowercase statuses to transition")
	}
}

func TestInvolves(t *testing.T) {
	t.Parallel()

	m := Match{HomeTeamID: "team-a", AwayTeamID: "team-b"}
	if !m.Involves("team-a") || !m.Involves("team-b") {
		t.Fatal("expected both sides to be involved")
	}
	if m.Involves("team-c") {
		t.Fatal("expected team-c to be uninvolved")
	}
}
