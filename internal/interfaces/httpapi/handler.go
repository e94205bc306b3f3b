package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ruangliga/competition-engine/internal/domain/fixture"
	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/scorer"
	"github.com/ruangliga/competition-engine/internal/domain/standing"
	"github.com/ruangliga/competition-engine/internal/platform/logging"
	"github.com/ruangliga/competition-engine/internal/usecase"
)

type Handler struct {
	scheduleService *usecase.ScheduleService
	matchService    *usecase.MatchService
	standingService *usecase.StandingService
	scorerService   *usecase.ScorerService
	resyncService   *usecase.ResyncService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	scheduleService *usecase.ScheduleService,
	matchService *usecase.MatchService,
	standingService *usecase.StandingService,
	scorerService *usecase.ScorerService,
	resyncService *usecase.ResyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scheduleService: scheduleService,
		matchService:    matchService,
		standingService: standingService,
		scorerService:   scorerService,
		resyncService:   resyncService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type generateScheduleRequest struct {
	StartDate string `json:"start_date" validate:"required"`
}

type recordGoalRequest struct {
	ScorerID     string `json:"scorer_id" validate:"required"`
	ScorerTeamID string `json:"scorer_team_id" validate:"required"`
	Minute       int    `json:"minute" validate:"gte=0,lte=130"`
	OwnGoal      bool   `json:"own_goal"`
	Penalty      bool   `json:"penalty"`
}

type amendGoalRequest struct {
	ScorerID     *string `json:"scorer_id,omitempty"`
	ScorerTeamID *string `json:"scorer_team_id,omitempty"`
	Minute       *int    `json:"minute,omitempty" validate:"omitempty,gte=0,lte=130"`
	OwnGoal      *bool   `json:"own_goal,omitempty"`
	Penalty      *bool   `json:"penalty,omitempty"`
}

type setMatchStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type resyncRequest struct {
	MaxWorkers int `json:"max_workers" validate:"gte=0,lte=64"`
}

type fixtureDTO struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competitionId"`
	Matchday      int    `json:"matchday"`
	HomeTeamID    string `json:"homeTeamId"`
	AwayTeamID    string `json:"awayTeamId"`
	KickoffAt     string `json:"kickoffAt"`
}

type matchDTO struct {
	ID            string `json:"id"`
	CompetitionID string `json:"competitionId"`
	Matchday      int    `json:"matchday"`
	HomeTeamID    string `json:"homeTeamId"`
	AwayTeamID    string `json:"awayTeamId"`
	HomeScore     int    `json:"homeScore"`
	AwayScore     int    `json:"awayScore"`
	Status        string `json:"status"`
	KickoffAt     string `json:"kickoffAt"`
}

type goalEventDTO struct {
	ID           string `json:"id"`
	MatchID      string `json:"matchId"`
	ScorerID     string `json:"scorerId"`
	ScorerTeamID string `json:"scorerTeamId"`
	Minute       int    `json:"minute"`
	OwnGoal      bool   `json:"ownGoal"`
	Penalty      bool   `json:"penalty"`
}

type standingRowDTO struct {
	CompetitionID  string `json:"competitionId"`
	TeamID         string `json:"teamId"`
	Position       int    `json:"position"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
}

type scorerEntryDTO struct {
	PlayerID string `json:"playerId"`
	Goals    int    `json:"goals"`
}

type mutationResultDTO struct {
	Match          matchDTO         `json:"match"`
	StandingsDelta []standingRowDTO `json:"standingsDelta,omitempty"`
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:            v.ID,
		CompetitionID: v.CompetitionID,
		Matchday:      v.Matchday,
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		KickoffAt:     v.KickoffAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:            v.FixtureID,
		CompetitionID: v.CompetitionID,
		Matchday:      v.Matchday,
		HomeTeamID:    v.HomeTeamID,
		AwayTeamID:    v.AwayTeamID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
		Status:        match.NormalizeStatus(v.Status),
		KickoffAt:     v.KickoffAt.UTC().Format(time.RFC3339),
	}
}

func goalEventToDTO(v goal.Event) goalEventDTO {
	return goalEventDTO{
		ID:           v.ID,
		MatchID:      v.MatchID,
		ScorerID:     v.ScorerID,
		ScorerTeamID: v.ScorerTeamID,
		Minute:       v.Minute,
		OwnGoal:      v.OwnGoal,
		Penalty:      v.Penalty,
	}
}

func standingRowToDTO(v standing.Row) standingRowDTO {
	return standingRowDTO{
		CompetitionID:  v.CompetitionID,
		TeamID:         v.TeamID,
		Position:       v.Position,
		Played:         v.Played,
		Won:            v.Won,
		Draw:           v.Draw,
		Lost:           v.Lost,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
		Form:           v.Form,
	}
}

func scorerEntryToDTO(v scorer.Entry) scorerEntryDTO {
	return scorerEntryDTO{
		PlayerID: v.PlayerID,
		Goals:    v.Goals,
	}
}

func mutationResultToDTO(v usecase.MutationResult) mutationResultDTO {
	out := mutationResultDTO{Match: matchToDTO(v.Match)}
	for _, row := range v.StandingsDelta {
		out.StandingsDelta = append(out.StandingsDelta, standingRowToDTO(row))
	}
	return out
}
