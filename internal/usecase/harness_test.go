package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/ruangliga/competition-engine/internal/domain/player"
	"github.com/ruangliga/competition-engine/internal/domain/team"
	"github.com/ruangliga/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
)

const testCompetitionID = "comp-1"

// engineHarness wires every service against the in-memory repositories.
// Tests drive the same paths the HTTP layer does, minus the transport.
type engineHarness struct {
	teams     *memory.TeamRepository
	players   *memory.PlayerRepository
	fixtures  *memory.FixtureRepository
	matches   *memory.MatchRepository
	goals     *memory.GoalRepository
	standings *memory.StandingRepository

	published *capturingPublisher

	scheduleSvc *ScheduleService
	standingSvc *StandingService
	matchSvc    *MatchService
	scorerSvc   *ScorerService
	resyncSvc   *ResyncService
}

func newEngineHarness(teams []team.Team, players []player.Player) *engineHarness {
	h := &engineHarness{
		teams:     memory.NewTeamRepository(teams),
		players:   memory.NewPlayerRepository(players),
		fixtures:  memory.NewFixtureRepository(nil),
		matches:   memory.NewMatchRepository(nil),
		goals:     memory.NewGoalRepository(),
		standings: memory.NewStandingRepository(),
		published: &capturingPublisher{},
	}

	logger := logging.NewNop()
	ids := &seqIDGenerator{}

	h.scheduleSvc = NewScheduleService(h.teams, h.fixtures, h.matches, ids, logger)
	h.standingSvc = NewStandingService(h.teams, h.matches, h.standings, nil, logger)
	h.matchSvc = NewMatchService(h.matches, h.goals, h.players, h.standingSvc, h.published, ids, logger)
	h.scorerSvc = NewScorerService(h.goals, h.matches, nil, logger)
	h.resyncSvc = NewResyncService(h.matches, h.goals, h.standingSvc, logger)

	return h
}

func fourTeams() ([]team.Team, []player.Player) {
	teams := make([]team.Team, 0, 4)
	players := make([]player.Player, 0, 8)
	for i, teamID := range []string{"team-a", "team-b", "team-c", "team-d"} {
		teams = append(teams, team.Team{
			ID:            teamID,
			CompetitionID: testCompetitionID,
			Name:          fmt.Sprintf("Team %d", i+1),
		})
		for p := 1; p <= 2; p++ {
			players = append(players, player.Player{
				ID:            fmt.Sprintf("%s-p%d", teamID, p),
				CompetitionID: testCompetitionID,
				TeamID:        teamID,
				Name:          fmt.Sprintf("%s Player %d", teamID, p),
			})
		}
	}
	return teams, players
}

type seqIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

type capturingPublisher struct {
	mu      sync.Mutex
	updates []MatchUpdate
}

func (p *capturingPublisher) PublishMatchUpdate(_ context.Context, update MatchUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, update)
	return nil
}

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.updates)
}

func (p *capturingPublisher) last() (MatchUpdate, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.updates) == 0 {
		return MatchUpdate{}, false
	}
	return p.updates[len(p.updates)-1], true
}
