package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ruangliga/competition-engine/internal/usecase"
)

func (h *Handler) Resync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Resync")
	defer span.End()

	competitionID := r.PathValue("competitionID")

	// The body is optional; an empty POST rebuilds with default workers.
	var req resyncRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resyncService.Rebuild(ctx, usecase.RebuildInput{
		CompetitionID: competitionID,
		MaxWorkers:    req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "resync failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
