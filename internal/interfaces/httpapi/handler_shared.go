package httpapi

import (
	"context"
	"time"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/payroll"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/usecase"
)

type leagueDTO struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	ConfederationID      string  `json:"confederation_id"`
	ConfirmDeadlineHours int     `json:"confirm_deadline_hours"`
	BidIncrements        []int64 `json:"bid_increments"`
	MarketClosedFrom     string  `json:"market_closed_from,omitempty"`
	MarketClosedUntil    string  `json:"market_closed_until,omitempty"`
}

type clubDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"league_id"`
	OwnerID   string `json:"owner_id"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
}

type rosterEntryDTO struct {
	ID            string `json:"id"`
	ClubID        string `json:"club_id"`
	PlayerID      string `json:"player_id"`
	Active        bool   `json:"active"`
	Value         int64  `json:"value"`
	Wage          int64  `json:"wage"`
	ReleaseClause int64  `json:"release_clause"`
	AcquiredAt    string `json:"acquired_at"`
	ReleasedAt    string `json:"released_at,omitempty"`
}

type clubRosterDTO struct {
	Club     clubDTO          `json:"club"`
	Entries  []rosterEntryDTO `json:"entries"`
	WageBill int64            `json:"wage_bill"`
}

type auctionDTO struct {
	ID           string `json:"id"`
	LeagueID     string `json:"league_id"`
	PlayerID     string `json:"player_id"`
	SellerClubID string `json:"seller_club_id,omitempty"`
	CurrentBid   int64  `json:"current_bid"`
	BidderClubID string `json:"bidder_club_id,omitempty"`
	ExpiresAt    string `json:"expires_at"`
	FinalizedAt  string `json:"finalized_at,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type auctionBidDTO struct {
	ID        string `json:"id"`
	AuctionID string `json:"auction_id"`
	ClubID    string `json:"club_id"`
	Amount    int64  `json:"amount"`
	PlacedAt  string `json:"placed_at"`
}

type fixtureDTO struct {
	ID             string `json:"id"`
	LeagueID       string `json:"league_id"`
	HomeClubID     string `json:"home_club_id"`
	AwayClubID     string `json:"away_club_id"`
	Status         string `json:"status"`
	ScheduledAt    string `json:"scheduled_at,omitempty"`
	ForcedSchedule bool   `json:"forced_schedule"`
	CreatedAt      string `json:"created_at"`
}

type payrollChargeDTO struct {
	ID        string `json:"id"`
	ClubID    string `json:"club_id"`
	Round     int    `json:"round"`
	Amount    int64  `json:"amount"`
	ChargedAt string `json:"charged_at"`
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	ctx, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:                   v.ID,
		Name:                 v.Name,
		ConfederationID:      v.ConfederationID,
		ConfirmDeadlineHours: v.ConfirmDeadlineHours,
		BidIncrements:        append([]int64(nil), v.BidIncrements...),
		MarketClosedFrom:     formatOptionalTime(v.MarketClosedFrom),
		MarketClosedUntil:    formatOptionalTime(v.MarketClosedUntil),
	}
}

func clubToDTO(ctx context.Context, v club.Club) clubDTO {
	ctx, span := startSpan(ctx, "httpapi.clubToDTO")
	defer span.End()

	return clubDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		Balance:   v.Balance,
		CreatedAt: formatTime(v.CreatedAt),
	}
}

func rosterEntryToDTO(ctx context.Context, v roster.Entry) rosterEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterEntryToDTO")
	defer span.End()

	return rosterEntryDTO{
		ID:            v.ID,
		ClubID:        v.ClubID,
		PlayerID:      v.PlayerID,
		Active:        v.Active,
		Value:         v.Value,
		Wage:          v.Wage,
		ReleaseClause: v.ReleaseClause,
		AcquiredAt:    formatTime(v.AcquiredAt),
		ReleasedAt:    formatOptionalTime(v.ReleasedAt),
	}
}

func clubRosterToDTO(ctx context.Context, v usecase.ClubRoster) clubRosterDTO {
	ctx, span := startSpan(ctx, "httpapi.clubRosterToDTO")
	defer span.End()

	entries := make([]rosterEntryDTO, 0, len(v.Entries))
	for _, entry := range v.Entries {
		entries = append(entries, rosterEntryToDTO(ctx, entry))
	}

	return clubRosterDTO{
		Club:     clubToDTO(ctx, v.Club),
		Entries:  entries,
		WageBill: v.WageBill,
	}
}

func auctionToDTO(ctx context.Context, v auction.Auction) auctionDTO {
	ctx, span := startSpan(ctx, "httpapi.auctionToDTO")
	defer span.End()

	return auctionDTO{
		ID:           v.ID,
		LeagueID:     v.LeagueID,
		PlayerID:     v.PlayerID,
		SellerClubID: v.SellerClubID,
		CurrentBid:   v.CurrentBid,
		BidderClubID: v.BidderClubID,
		ExpiresAt:    formatTime(v.ExpiresAt),
		FinalizedAt:  formatOptionalTime(v.FinalizedAt),
		CreatedAt:    formatTime(v.CreatedAt),
	}
}

func auctionBidToDTO(ctx context.Context, v auction.Bid) auctionBidDTO {
	ctx, span := startSpan(ctx, "httpapi.auctionBidToDTO")
	defer span.End()

	return auctionBidDTO{
		ID:        v.ID,
		AuctionID: v.AuctionID,
		ClubID:    v.ClubID,
		Amount:    v.Amount,
		PlacedAt:  formatTime(v.PlacedAt),
	}
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		ID:             v.ID,
		LeagueID:       v.LeagueID,
		HomeClubID:     v.HomeClubID,
		AwayClubID:     v.AwayClubID,
		Status:         v.Status,
		ScheduledAt:    formatOptionalTime(v.ScheduledAt),
		ForcedSchedule: v.ForcedSchedule,
		CreatedAt:      formatTime(v.CreatedAt),
	}
}

func payrollChargeToDTO(ctx context.Context, v payroll.Charge) payrollChargeDTO {
	ctx, span := startSpan(ctx, "httpapi.payrollChargeToDTO")
	defer span.End()

	return payrollChargeDTO{
		ID:        v.ID,
		ClubID:    v.ClubID,
		Round:     v.Round,
		Amount:    v.Amount,
		ChargedAt: formatTime(v.ChargedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
