package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/payroll"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReason string
		wantStatus string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, wantCode: http.StatusBadRequest, wantReason: "invalidInput", wantStatus: "INVALID_ARGUMENT"},
		{name: "invalid increment", err: auction.ErrInvalidIncrement, wantCode: http.StatusBadRequest, wantReason: "invalidInput", wantStatus: "INVALID_ARGUMENT"},
		{name: "not found", err: usecase.ErrNotFound, wantCode: http.StatusNotFound, wantReason: "notFound", wantStatus: "NOT_FOUND"},
		{name: "unauthorized", err: usecase.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantReason: "unauthorized", wantStatus: "UNAUTHENTICATED"},
		{name: "dependency unavailable", err: usecase.ErrDependencyUnavailable, wantCode: http.StatusServiceUnavailable, wantReason: "dependencyUnavailable", wantStatus: "UNAVAILABLE"},
		{name: "outbid", err: auction.ErrOutbid, wantCode: http.StatusConflict, wantReason: "outbid", wantStatus: "ABORTED"},
		{name: "auction closed", err: auction.ErrClosed, wantCode: http.StatusConflict, wantReason: "auctionClosed", wantStatus: "FAILED_PRECONDITION"},
		{name: "already finalized", err: auction.ErrAlreadyFinalized, wantCode: http.StatusConflict, wantReason: "auctionClosed", wantStatus: "FAILED_PRECONDITION"},
		{name: "roster over limit", err: roster.ErrOverLimit, wantCode: http.StatusConflict, wantReason: "rosterOverLimit", wantStatus: "FAILED_PRECONDITION"},
		{name: "already on roster", err: roster.ErrAlreadyOnRoster, wantCode: http.StatusConflict, wantReason: "alreadyExists", wantStatus: "ALREADY_EXISTS"},
		{name: "already charged", err: payroll.ErrAlreadyCharged, wantCode: http.StatusConflict, wantReason: "alreadyExists", wantStatus: "ALREADY_EXISTS"},
		{name: "insufficient funds", err: club.ErrInsufficientFunds, wantCode: http.StatusConflict, wantReason: "insufficientFunds", wantStatus: "FAILED_PRECONDITION"},
		{name: "invalid transition", err: fixture.ErrInvalidTransition, wantCode: http.StatusConflict, wantReason: "conflict", wantStatus: "FAILED_PRECONDITION"},
		{name: "conflict", err: usecase.ErrConflict, wantCode: http.StatusConflict, wantReason: "conflict", wantStatus: "FAILED_PRECONDITION"},
		{name: "unknown", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError, wantReason: "internalError", wantStatus: "INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), fmt.Errorf("wrapped: %w", tt.err))
			if got.HTTPStatus != tt.wantCode {
				t.Fatalf("unexpected http status: got %d want %d", got.HTTPStatus, tt.wantCode)
			}
			if got.Reason != tt.wantReason {
				t.Fatalf("unexpected reason: got %q want %q", got.Reason, tt.wantReason)
			}
			if got.Status != tt.wantStatus {
				t.Fatalf("unexpected status: got %q want %q", got.Status, tt.wantStatus)
			}
		})
	}
}
