package postgres

import (
	"database/sql"
	"time"

	"github.com/ligafut/league-core/internal/domain/auction"
)

type auctionTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	LeagueID     string         `db:"league_public_id"`
	PlayerID     string         `db:"player_public_id"`
	SellerClubID sql.NullString `db:"seller_club_public_id"`
	CurrentBid   int64          `db:"current_bid"`
	BidderClubID sql.NullString `db:"bidder_club_public_id"`
	ExpiresAt    time.Time      `db:"expires_at"`
	FinalizedAt  *time.Time     `db:"finalized_at"`
	CreatedAt    time.Time      `db:"created_at"`
}

type auctionInsertModel struct {
	PublicID     string    `db:"public_id"`
	LeagueID     string    `db:"league_public_id"`
	PlayerID     string    `db:"player_public_id"`
	SellerClubID *string   `db:"seller_club_public_id"`
	CurrentBid   int64     `db:"current_bid"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}

type auctionBidTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	AuctionID string    `db:"auction_public_id"`
	ClubID    string    `db:"club_public_id"`
	Amount    int64     `db:"amount"`
	PlacedAt  time.Time `db:"placed_at"`
}

type auctionBidInsertModel struct {
	PublicID  string    `db:"public_id"`
	AuctionID string    `db:"auction_public_id"`
	ClubID    string    `db:"club_public_id"`
	Amount    int64     `db:"amount"`
	PlacedAt  time.Time `db:"placed_at"`
}

func auctionFromRow(row auctionTableModel) auction.Auction {
	return auction.Auction{
		ID:           row.PublicID,
		LeagueID:     row.LeagueID,
		PlayerID:     row.PlayerID,
		SellerClubID: row.SellerClubID.String,
		CurrentBid:   row.CurrentBid,
		BidderClubID: row.BidderClubID.String,
		ExpiresAt:    row.ExpiresAt,
		FinalizedAt:  row.FinalizedAt,
		CreatedAt:    row.CreatedAt,
	}
}

func auctionBidFromRow(row auctionBidTableModel) auction.Bid {
	return auction.Bid{
		ID:        row.PublicID,
		AuctionID: row.AuctionID,
		ClubID:    row.ClubID,
		Amount:    row.Amount,
		PlacedAt:  row.PlacedAt,
	}
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
