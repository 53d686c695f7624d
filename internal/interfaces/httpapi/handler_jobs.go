package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/usecase"
)

type finalizeAuctionsJobRequest struct {
	ConfederationID string `json:"confederation_id"`
}

// RunFinalizeAuctionsJob settles every expired auction, optionally scoped to
// one confederation. The queue retries delivery, so the sweep is idempotent.
func (h *Handler) RunFinalizeAuctionsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFinalizeAuctionsJob")
	defer span.End()

	if h.auctionService == nil {
		writeError(ctx, w, fmt.Errorf("%w: auction service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req finalizeAuctionsJobRequest
	if err := decodeOptionalJobBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auctionService.FinalizeExpired(ctx, strings.TrimSpace(req.ConfederationID))
	if err != nil {
		h.logger.WarnContext(ctx, "finalize auctions job failed", "confederation_id", req.ConfederationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type forceScheduleJobRequest struct {
	FixtureID string `json:"fixture_id"`
}

// RunForceScheduleJob forces scheduling. With a fixture id it forces that one
// fixture; without it, it sweeps everything past the confirmation deadline.
func (h *Handler) RunForceScheduleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunForceScheduleJob")
	defer span.End()

	if h.fixtureService == nil {
		writeError(ctx, w, fmt.Errorf("%w: fixture service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req forceScheduleJobRequest
	if err := decodeOptionalJobBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if fixtureID := strings.TrimSpace(req.FixtureID); fixtureID != "" {
		forced, err := h.fixtureService.ForceSchedule(ctx, fixtureID)
		if err != nil {
			h.logger.WarnContext(ctx, "force schedule job failed", "fixture_id", fixtureID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(ctx, forced))
		return
	}

	result, err := h.fixtureService.ForceOverdue(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "force overdue sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeOptionalJobBody tolerates an empty body; queue callbacks may POST
// without a payload.
func decodeOptionalJobBody(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
