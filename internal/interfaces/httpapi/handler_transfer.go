package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/usecase"
)

type buyPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

func (h *Handler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuyPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req buyPlayerRequest
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

	entry, err := h.transferService.Buy(ctx, usecase.BuyPlayerInput{
		UserID:   principal.UserID,
		LeagueID: r.PathValue("leagueID"),
		ClubID:   r.PathValue("clubID"),
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "buy player failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterEntryToDTO(ctx, entry))
}

type sellPlayerRequest struct {
	EntryID string `json:"entry_id" validate:"required"`
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req sellPlayerRequest
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

	entry, err := h.transferService.Sell(ctx, usecase.SellPlayerInput{
		UserID:   principal.UserID,
		LeagueID: r.PathValue("leagueID"),
		ClubID:   r.PathValue("clubID"),
		EntryID:  req.EntryID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"entry_id", req.EntryID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterEntryToDTO(ctx, entry))
}

type payReleaseClauseRequest struct {
	EntryID string `json:"entry_id" validate:"required"`
}

func (h *Handler) PayReleaseClause(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PayReleaseClause")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req payReleaseClauseRequest
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

	entry, err := h.transferService.PayReleaseClause(ctx, usecase.PayReleaseClauseInput{
		UserID:   principal.UserID,
		LeagueID: r.PathValue("leagueID"),
		ClubID:   r.PathValue("clubID"),
		EntryID:  req.EntryID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "pay release clause failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"entry_id", req.EntryID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, rosterEntryToDTO(ctx, entry))
}

type swapPlayersRequest struct {
	EntryID      string `json:"entry_id" validate:"required"`
	OtherEntryID string `json:"other_entry_id" validate:"required"`
}

func (h *Handler) SwapPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwapPlayers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req swapPlayersRequest
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

	if err := h.transferService.Swap(ctx, usecase.SwapPlayersInput{
		UserID:       principal.UserID,
		LeagueID:     r.PathValue("leagueID"),
		ClubID:       r.PathValue("clubID"),
		EntryID:      req.EntryID,
		OtherEntryID: req.OtherEntryID,
	}); err != nil {
		h.logger.WarnContext(ctx, "swap players failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"entry_id", req.EntryID,
			"other_entry_id", req.OtherEntryID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "swapped"})
}
