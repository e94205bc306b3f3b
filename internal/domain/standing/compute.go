package standing

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/ruangliga/competition-engine/internal/domain/match"
)

const formLength = 5

const (
	resultWin  = 'W'
	resultDraw = 'D'
	resultLoss = 'L'
)

// ComputeRow folds the given matches into a table row for teamID. Only
// finished matches involving the team contribute; input order must be
// chronological so the form string ends with the newest result.
func ComputeRow(competitionID, teamID string, matches []match.Match) (Row, error) {
	row := Row{CompetitionID: competitionID, TeamID: teamID}
	form := make([]byte, 0, len(matches))

	for _, m := range matches {
		if match.NormalizeStatus(m.Status) != match.StatusFinished || !m.Involves(teamID) {
			continue
		}
		if m.HomeScore < 0 || m.AwayScore < 0 {
			return Row{}, errors.AssertionFailedf(
				"negative score on match %s: %d-%d", m.FixtureID, m.HomeScore, m.AwayScore)
		}

		scored, conceded := m.HomeScore, m.AwayScore
		if m.AwayTeamID == teamID {
			scored, conceded = conceded, scored
		}

		row.Played++
		row.GoalsFor += scored
		row.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			row.Won++
			form = append(form, resultWin)
		case scored == conceded:
			row.Draw++
			form = append(form, resultDraw)
		default:
			row.Lost++
			form = append(form, resultLoss)
		}
	}

	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	row.Points = 3*row.Won + row.Draw
	if len(form) > formLength {
		form = form[len(form)-formLength:]
	}
	row.Form = string(form)

	return row, nil
}

// Rank orders rows by points, goal difference, goals scored, then team ID
// for determinism, and assigns 1-based positions. Position is always derived
// here; stored positions are a cache of this ordering.
func Rank(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].TeamID < out[j].TeamID
	})

	for i := range out {
		out[i].Position = i + 1
	}

	return out
}

// CheckRow validates the arithmetic identities every row must satisfy.
// A failure here is an internal invariant violation, not caller error.
func CheckRow(row Row) error {
	if row.Points != 3*row.Won+row.Draw {
		return errors.AssertionFailedf("standings points mismatch for team %s", row.TeamID)
	}
	if row.GoalDifference != row.GoalsFor-row.GoalsAgainst {
		return errors.AssertionFailedf("standings goal difference mismatch for team %s", row.TeamID)
	}
	if row.Played != row.Won+row.Draw+row.Lost {
		return errors.AssertionFailedf("standings played count mismatch for team %s", row.TeamID)
	}
	return nil
}
