package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/internal/domain/auction"
	qb "github.com/ligafut/league-core/internal/platform/querybuilder"
)

type AuctionRepository struct {
	db *sqlx.DB
}

func NewAuctionRepository(db *sqlx.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

func (r *AuctionRepository) GetByID(ctx context.Context, auctionID string) (auction.Auction, bool, error) {
	query, args, err := qb.Select("*").
		From("auctions").
		Where(qb.Eq("public_id", auctionID)).
		ToSQL()
	if err != nil {
		return auction.Auction{}, false, fmt.Errorf("build get auction by id query: %w", err)
	}

	var row auctionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return auction.Auction{}, false, nil
		}
		return auction.Auction{}, false, fmt.Errorf("get auction by id: %w", err)
	}

	return auctionFromRow(row), true, nil
}

func (r *AuctionRepository) ListByLeague(ctx context.Context, leagueID string) ([]auction.Auction, error) {
	query, args, err := qb.Select("*").
		From("auctions").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("expires_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list auctions by league query: %w", err)
	}

	var rows []auctionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list auctions by league: %w", err)
	}

	out := make([]auction.Auction, 0, len(rows))
	for _, row := range rows {
		out = append(out, auctionFromRow(row))
	}
	return out, nil
}

func (r *AuctionRepository) ListExpired(ctx context.Context, cutoff time.Time, confederationID string) ([]auction.Auction, error) {
	builder := qb.Select("a.*").
		From("auctions a").
		Where(
			qb.Lte("a.expires_at", cutoff.UTC()),
			qb.IsNull("a.finalized_at"),
		).
		OrderBy("a.expires_at", "a.id")
	if confederationID != "" {
		builder = qb.Select("a.*").
			From("auctions a JOIN leagues l ON l.public_id = a.league_public_id").
			Where(
				qb.Lte("a.expires_at", cutoff.UTC()),
				qb.IsNull("a.finalized_at"),
				qb.Eq("l.confederation_id", confederationID),
			).
			OrderBy("a.expires_at", "a.id")
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list expired auctions query: %w", err)
	}

	var rows []auctionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list expired auctions: %w", err)
	}

	out := make([]auction.Auction, 0, len(rows))
	for _, row := range rows {
		out = append(out, auctionFromRow(row))
	}
	return out, nil
}

func (r *AuctionRepository) Create(ctx context.Context, a auction.Auction) error {
	insertModel := auctionInsertModel{
		PublicID:     a.ID,
		LeagueID:     a.LeagueID,
		PlayerID:     a.PlayerID,
		SellerClubID: nullableString(a.SellerClubID),
		CurrentBid:   a.CurrentBid,
		ExpiresAt:    a.ExpiresAt.UTC(),
		CreatedAt:    a.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("auctions", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create auction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create auction: %w", err)
	}

	return nil
}

// CommitBid writes a bid only when the auction still carries the amount the
// bidder saw. Losing the race updates zero rows and reports committed=false.
// GREATEST keeps a concurrently extended expiry from moving backwards.
func (r *AuctionRepository) CommitBid(ctx context.Context, a auction.Auction, previousBid int64, bid auction.Bid) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx commit bid: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("auctions").
		Set("current_bid", a.CurrentBid).
		Set("bidder_club_public_id", a.BidderClubID).
		SetExpr("expires_at", "GREATEST(expires_at, ?)", a.ExpiresAt.UTC()).
		Where(
			qb.Eq("public_id", a.ID),
			qb.Eq("current_bid", previousBid),
			qb.IsNull("finalized_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build commit bid update query: %w", err)
	}
	result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return false, fmt.Errorf("commit bid update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected commit bid: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	bidInsertModel := auctionBidInsertModel{
		PublicID:  bid.ID,
		AuctionID: bid.AuctionID,
		ClubID:    bid.ClubID,
		Amount:    bid.Amount,
		PlacedAt:  bid.PlacedAt.UTC(),
	}
	bidQuery, bidArgs, err := qb.InsertModel("auction_bids", bidInsertModel, "")
	if err != nil {
		return false, fmt.Errorf("build insert auction bid query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, bidQuery, bidArgs...); err != nil {
		return false, fmt.Errorf("insert auction bid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit bid tx: %w", err)
	}

	return true, nil
}

// ClaimForFinalize stamps finalized_at exactly once per auction, even with
// several sweeper processes racing.
func (r *AuctionRepository) ClaimForFinalize(ctx context.Context, auctionID string, at time.Time) (bool, error) {
	query, args, err := qb.Update("auctions").
		Set("finalized_at", at.UTC()).
		Where(
			qb.Eq("public_id", auctionID),
			qb.IsNull("finalized_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build claim auction query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("claim auction for finalize: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected claim auction: %w", err)
	}

	return affected > 0, nil
}

// ReleaseClaim hands a claimed auction back after a failed settlement. The
// claim timestamp in the predicate keeps one sweep from releasing a claim
// another sweep wrote.
func (r *AuctionRepository) ReleaseClaim(ctx context.Context, auctionID string, at time.Time) error {
	query, args, err := qb.Update("auctions").
		SetExpr("finalized_at", "NULL").
		Where(
			qb.Eq("public_id", auctionID),
			qb.Eq("finalized_at", at.UTC()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release auction claim query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release auction claim: %w", err)
	}

	return nil
}

func (r *AuctionRepository) ListBids(ctx context.Context, auctionID string) ([]auction.Bid, error) {
	query, args, err := qb.Select("*").
		From("auction_bids").
		Where(qb.Eq("auction_public_id", auctionID)).
		OrderBy("placed_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list auction bids query: %w", err)
	}

	var rows []auctionBidTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list auction bids: %w", err)
	}

	out := make([]auction.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, auctionBidFromRow(row))
	}
	return out, nil
}
