package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ruangliga/competition-engine/internal/usecase"
)

func (h *Handler) ListTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopScorers")
	defer span.End()

	input, err := topScorersInputFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.CompetitionID = r.PathValue("competitionID")

	entries, err := h.scorerService.TopScorers(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list top scorers failed", "competition_id", input.CompetitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scorerEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, scorerEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchTopScorers")
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

	input, err := topScorersInputFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.MatchID = matchID

	entries, err := h.scorerService.TopScorers(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list match top scorers failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scorerEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, scorerEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func topScorersInputFromQuery(r *http.Request) (usecase.TopScorersInput, error) {
	var input usecase.TopScorersInput

	query := r.URL.Query()
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("%w: limit=%q is not an integer", usecase.ErrInvalidInput, raw)
		}
		input.Limit = limit
	}
	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return input, fmt.Errorf("%w: offset=%q is not an integer", usecase.ErrInvalidInput, raw)
		}
		input.Offset = offset
	}
	if raw := strings.TrimSpace(query.Get("exclude_own_goals")); raw != "" {
		exclude, err := strconv.ParseBool(raw)
		if err != nil {
			return input, fmt.Errorf("%w: exclude_own_goals=%q is not a boolean", usecase.ErrInvalidInput, raw)
		}
		input.ExcludeOwnGoals = exclude
	}

	return input, nil
}
