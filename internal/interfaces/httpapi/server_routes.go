package httpapi

import (
	"net/http"

	"github.com/ligafut/league-core/internal/usecase"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/clubs", handler.ListClubsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/fixtures", handler.ListFixturesByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/auctions", handler.ListAuctionsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/auctions/{auctionID}", handler.GetAuction)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/auctions/{auctionID}/bids", handler.ListAuctionBids)
	// Roster reads stay public: an over-limit owner must always see the
	// squad to decide what to sell.
	mux.HandleFunc("GET /v1/leagues/{leagueID}/clubs/{clubID}/roster", handler.GetClubRoster)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/clubs/{clubID}/payroll", handler.ListPayrollCharges)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, rosterGuard *usecase.RosterGuard) {
	mux.Handle("POST /v1/leagues/{leagueID}/clubs",
		RequireAuth(verifier, http.HandlerFunc(handler.CreateClub)))

	// Market routes go through the roster limit guard; selling does not,
	// that is the way back under the limit.
	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/auctions/{auctionID}/bids",
		RequireAuth(verifier, RequireWithinRosterLimit(rosterGuard, http.HandlerFunc(handler.PlaceBid))))
	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/transfers/buy",
		RequireAuth(verifier, RequireWithinRosterLimit(rosterGuard, http.HandlerFunc(handler.BuyPlayer))))
	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/transfers/release-clause",
		RequireAuth(verifier, RequireWithinRosterLimit(rosterGuard, http.HandlerFunc(handler.PayReleaseClause))))
	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/transfers/swap",
		RequireAuth(verifier, RequireWithinRosterLimit(rosterGuard, http.HandlerFunc(handler.SwapPlayers))))
	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/transfers/sell",
		RequireAuth(verifier, http.HandlerFunc(handler.SellPlayer)))

	mux.Handle("POST /v1/leagues/{leagueID}/clubs/{clubID}/payroll/charges",
		RequireAuth(verifier, http.HandlerFunc(handler.ChargePayroll)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/finalize-auctions", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunFinalizeAuctionsJob)))
	mux.Handle("POST /v1/internal/jobs/force-schedule", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunForceScheduleJob)))
}
