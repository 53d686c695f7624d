package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/usecase"
)

func (h *Handler) ListPayrollCharges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPayrollCharges")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	clubID := r.PathValue("clubID")
	charges, err := h.leagueService.ListPayrollCharges(ctx, leagueID, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "list payroll charges failed", "league_id", leagueID, "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]payrollChargeDTO, 0, len(charges))
	for _, charge := range charges {
		items = append(items, payrollChargeToDTO(ctx, charge))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type chargePayrollRequest struct {
	Round int `json:"round" validate:"required,gt=0"`
}

func (h *Handler) ChargePayroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChargePayroll")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req chargePayrollRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	charge, err := h.payrollService.ChargeRound(ctx, usecase.ChargeRoundInput{
		UserID:   principal.UserID,
		LeagueID: r.PathValue("leagueID"),
		ClubID:   r.PathValue("clubID"),
		Round:    req.Round,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "charge payroll failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"round", req.Round,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, payrollChargeToDTO(ctx, charge))
}
