package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ruangliga/competition-engine/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	matchID := r.PathValue("matchID")

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if m.CompetitionID != competitionID {
		writeError(ctx, w, fmt.Errorf("%w: match=%s in competition=%s", usecase.ErrNotFound, matchID, competitionID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ListMatchGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchGoals")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	matchID := r.PathValue("matchID")

	m, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if m.CompetitionID != competitionID {
		writeError(ctx, w, fmt.Errorf("%w: match=%s in competition=%s", usecase.ErrNotFound, matchID, competitionID))
		return
	}

	events, err := h.matchService.ListGoals(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match goals failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]goalEventDTO, 0, len(events))
	for _, item := range events {
		items = append(items, goalEventToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecordGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGoal")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req recordGoalRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.RecordGoal(ctx, usecase.RecordGoalInput{
		MatchID:      matchID,
		ScorerID:     req.ScorerID,
		ScorerTeamID: req.ScorerTeamID,
		Minute:       req.Minute,
		OwnGoal:      req.OwnGoal,
		Penalty:      req.Penalty,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record goal failed", "match_id", matchID, "scorer_id", req.ScorerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mutationResultToDTO(result))
}

func (h *Handler) AmendGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AmendGoal")
	defer span.End()

	goalID := r.PathValue("goalID")

	var req amendGoalRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.AmendGoal(ctx, goalID, usecase.AmendGoalPatch{
		ScorerID:     req.ScorerID,
		ScorerTeamID: req.ScorerTeamID,
		Minute:       req.Minute,
		OwnGoal:      req.OwnGoal,
		Penalty:      req.Penalty,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "amend goal failed", "goal_id", goalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultToDTO(result))
}

func (h *Handler) RetractGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RetractGoal")
	defer span.End()

	goalID := r.PathValue("goalID")

	result, err := h.matchService.RetractGoal(ctx, goalID)
	if err != nil {
		h.logger.WarnContext(ctx, "retract goal failed", "goal_id", goalID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultToDTO(result))
}

func (h *Handler) SetMatchStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchStatus")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req setMatchStatusRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matchService.SetMatchStatus(ctx, matchID, req.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "set match status failed", "match_id", matchID, "status", req.Status, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationResultToDTO(result))
}
