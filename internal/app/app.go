package app

import (
	"fmt"
	"net/http"

	"github.com/ruangliga/competition-engine/internal/config"
	"github.com/ruangliga/competition-engine/internal/domain/fixture"
	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/player"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
	"github.com/ruangliga/competition-engine/internal/domain/team"
	"github.com/ruangliga/competition-engine/internal/infrastructure/notify"
	"github.com/ruangliga/competition-engine/internal/infrastructure/repository/memory"
	"github.com/ruangliga/competition-engine/internal/infrastructure/repository/postgres"
	"github.com/ruangliga/competition-engine/internal/interfaces/httpapi"
	"github.com/ruangliga/competition-engine/internal/platform/cache"
	idgen "github.com/ruangliga/competition-engine/internal/platform/id"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
	"github.com/ruangliga/competition-engine/internal/platform/resilience"
	"github.com/ruangliga/competition-engine/internal/usecase"
)

type repositories struct {
	teams     team.Repository
	players   player.Repository
	fixtures  fixture.Repository
	matches   match.Repository
	goals     goal.Repository
	standings standing.Repository
}

// NewHTTPServer wires repositories, services, and the router into a ready
// http.Server. With an empty DB_URL the engine runs fully in memory.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build repositories: %w", err)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	var publisher usecase.UpdatePublisher = usecase.NopPublisher{}
	if cfg.WebhookEnabled {
		publisher = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			Endpoint: cfg.WebhookEndpoint,
			Secret:   cfg.WebhookSecret,
			Timeout:  cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	ids := idgen.NewRandomGenerator()

	scheduleSvc := usecase.NewScheduleService(repos.teams, repos.fixtures, repos.matches, ids, logger)
	standingSvc := usecase.NewStandingService(repos.teams, repos.matches, repos.standings, store, logger)
	matchSvc := usecase.NewMatchService(repos.matches, repos.goals, repos.players, standingSvc, publisher, ids, logger)
	scorerSvc := usecase.NewScorerService(repos.goals, repos.matches, store, logger)
	resyncSvc := usecase.NewResyncService(repos.matches, repos.goals, standingSvc, logger)

	handler := httpapi.NewHandler(scheduleSvc, matchSvc, standingSvc, scorerSvc, resyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("persistence mode", "mode", "memory", "demo_seed", cfg.DemoSeedEnabled)

		teams := []team.Team{}
		players := []player.Player{}
		if cfg.DemoSeedEnabled {
			teams, players = memory.SeedDemo()
		}

		return repositories{
			teams:     memory.NewTeamRepository(teams),
			players:   memory.NewPlayerRepository(players),
			fixtures:  memory.NewFixtureRepository(nil),
			matches:   memory.NewMatchRepository(nil),
			goals:     memory.NewGoalRepository(),
			standings: memory.NewStandingRepository(),
		}, nil
	}

	db, err := openDB(cfg.DBURL)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("persistence mode", "mode", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		teams:     postgres.NewTeamRepository(db),
		players:   postgres.NewPlayerRepository(db),
		fixtures:  postgres.NewFixtureRepository(db),
		matches:   postgres.NewMatchRepository(db),
		goals:     postgres.NewGoalRepository(db),
		standings: postgres.NewStandingRepository(db),
	}, nil
}
