package memory

import (
	"fmt"

	"github.com/ruangliga/competition-engine/internal/domain/player"
	"github.com/ruangliga/competition-engine/internal/domain/team"
)

// DemoCompetitionID identifies the competition pre-loaded by SeedDemo.
const DemoCompetitionID = "liga-demo"

var demoTeams = []team.Team{
	{ID: "team-garuda", CompetitionID: DemoCompetitionID, Name: "Garuda FC", Short: "GAR"},
	{ID: "team-rajawali", CompetitionID: DemoCompetitionID, Name: "Rajawali United", Short: "RAJ"},
	{ID: "team-harimau", CompetitionID: DemoCompetitionID, Name: "Harimau City", Short: "HAR"},
	{ID: "team-komodo", CompetitionID: DemoCompetitionID, Name: "Komodo Warriors", Short: "KOM"},
	{ID: "team-elang", CompetitionID: DemoCompetitionID, Name: "Elang Laut", Short: "ELA"},
	{ID: "team-banteng", CompetitionID: DemoCompetitionID, Name: "Banteng Muda", Short: "BAN"},
}

// SeedDemo returns a deterministic demo roster: six teams with four players
// each. It seeds no fixtures, matches, or goals; schedules are generated
// through the usecase layer so the demo data exercises the same code paths
// as real input.
func SeedDemo() ([]team.Team, []player.Player) {
	teams := make([]team.Team, len(demoTeams))
	copy(teams, demoTeams)

	players := make([]player.Player, 0, len(teams)*4)
	for _, t := range teams {
		for i := 1; i <= 4; i++ {
			players = append(players, player.Player{
				ID:            fmt.Sprintf("%s-p%d", t.ID, i),
				CompetitionID: t.CompetitionID,
				TeamID:        t.ID,
				Name:          fmt.Sprintf("%s Player %d", t.Short, i),
			})
		}
	}

	return teams, players
}
