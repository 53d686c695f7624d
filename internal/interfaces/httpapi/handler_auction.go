package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/usecase"
)

func (h *Handler) ListAuctionsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAuctionsByLeague")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	auctions, err := h.leagueService.ListAuctionsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list auctions failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auctionDTO, 0, len(auctions))
	for _, a := range auctions {
		items = append(items, auctionToDTO(ctx, a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetAuction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAuction")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	auctionID := r.PathValue("auctionID")
	a, err := h.leagueService.GetAuction(ctx, leagueID, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get auction failed", "league_id", leagueID, "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(ctx, a))
}

func (h *Handler) ListAuctionBids(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAuctionBids")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	auctionID := r.PathValue("auctionID")
	bids, err := h.leagueService.ListAuctionBids(ctx, leagueID, auctionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list auction bids failed", "league_id", leagueID, "auction_id", auctionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auctionBidDTO, 0, len(bids))
	for _, b := range bids {
		items = append(items, auctionBidToDTO(ctx, b))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type placeBidRequest struct {
	Increment int64 `json:"increment" validate:"required,gt=0"`
}

func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBid")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req placeBidRequest
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

	updated, err := h.auctionService.PlaceBid(ctx, usecase.PlaceBidInput{
		UserID:    principal.UserID,
		LeagueID:  r.PathValue("leagueID"),
		ClubID:    r.PathValue("clubID"),
		AuctionID: r.PathValue("auctionID"),
		Increment: req.Increment,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bid failed",
			"league_id", r.PathValue("leagueID"),
			"club_id", r.PathValue("clubID"),
			"auction_id", r.PathValue("auctionID"),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, auctionToDTO(ctx, updated))
}
