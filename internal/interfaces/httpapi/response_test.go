package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ruangliga/competition-engine/internal/domain/goal"
	"github.com/ruangliga/competition-engine/internal/domain/match"
	"github.com/ruangliga/competition-engine/internal/domain/schedule"
	"github.com/ruangliga/competition-engine/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err        error
		wantStatus int
		wantReason string
		wantCode   string
	}{
		{fmt.Errorf("%w: bad body", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: match=x", usecase.ErrNotFound), http.StatusNotFound, "notFound", "NOT_FOUND"},
		{fmt.Errorf("%w: token", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"},
		{fmt.Errorf("%w: webhook", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
		{schedule.ErrInvalidTeamCount, http.StatusBadRequest, "invalidTeamCount", "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: team=z", goal.ErrScorerNotInMatch), http.StatusBadRequest, "scorerNotInMatch", "INVALID_ARGUMENT"},
		{fmt.Errorf("%w: LIVE -> SCHEDULED", match.ErrInvalidStatusTransition), http.StatusConflict, "invalidStatusTransition", "FAILED_PRECONDITION"},
		{errors.New("anything else"), http.StatusInternalServerError, "internalError", "INTERNAL"},
	}

	for _, tc := range cases {
		mapped := mapError(context.Background(), tc.err)
		if mapped.HTTPStatus != tc.wantStatus || mapped.Reason != tc.wantReason || mapped.Status != tc.wantCode {
			t.Fatalf("mapError(%v) = %+v, want %d/%s/%s", tc.err, mapped, tc.wantStatus, tc.wantReason, tc.wantCode)
		}
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.APIVersion != "2.0" {
		t.Fatalf("unexpected apiVersion %q", envelope.APIVersion)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}

func TestWriteErrorEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: match=m1", usecase.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Error      struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
			Status  string `json:"status"`
			Errors  []struct {
				Domain string `json:"domain"`
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != http.StatusNotFound || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
	if len(envelope.Error.Errors) != 1 || envelope.Error.Errors[0].Domain != "competition-engine" || envelope.Error.Errors[0].Reason != "notFound" {
		t.Fatalf("unexpected error items: %+v", envelope.Error.Errors)
	}
}

func TestWriteInternalError_HidesDetails(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}
