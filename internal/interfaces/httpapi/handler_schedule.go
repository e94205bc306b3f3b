package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ruangliga/competition-engine/internal/usecase"
)

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	competitionID := r.PathValue("competitionID")

	var req generateScheduleRequest
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

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.scheduleService.GenerateSchedule(ctx, competitionID, startDate)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, item := range fixtures {
		items = append(items, fixtureToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	fixtures, err := h.scheduleService.ListFixtures(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, item := range fixtures {
		items = append(items, fixtureToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseStartDate(raw string) (time.Time, error) {
	candidate := strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, candidate); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", candidate); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: start_date=%q is not RFC3339 or YYYY-MM-DD", usecase.ErrInvalidInput, raw)
}
