package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/schedule"
	"github.com/ruangliga/competition-engine/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "competition-engine"
)

// Responses follow the Google JSON style guide: a top-level envelope with
// either data or error, never both.
type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; the first sentinel the error wraps wins.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{schedule.ErrInvalidTeamCount, mappedError{http.StatusBadRequest, "invalidTeamCount", "INVALID_ARGUMENT"}},
	{goal.ErrScorerNotInMatch, mappedError{http.StatusBadRequest, "scorerNotInMatch", "INVALID_ARGUMENT"}},
	{match.ErrInvalidStatusTransition, mappedError{http.StatusConflict, "invalidStatusTransition", "FAILED_PRECONDITION"}},
}

var internalMapping = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(_ context.Context, err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalMapping
}

func writeJSON(_ context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	m := mapError(ctx, err)
	writeJSON(ctx, w, m.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    m.HTTPStatus,
			Message: err.Error(),
			Status:  m.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  m.Reason,
				Message: err.Error(),
			}},
		},
	})
}

// writeInternalError never echoes the underlying error; unexpected failures
// are logged server side and surfaced as an opaque 500.
func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	const msg = "internal server error"

	writeJSON(ctx, w, http.StatusInternalServerError, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    http.StatusInternalServerError,
			Message: msg,
			Status:  internalMapping.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  internalMapping.Reason,
				Message: msg,
			}},
		},
	})
}
