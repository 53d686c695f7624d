package auction

import (
	"context"
	"time"
)

// Repository exposes auction persistence operations.
type Repository interface {
	GetByID(ctx context.Context, auctionID string) (Auction, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Auction, error)
	// ListExpired returns unfinalized auctions whose expiry is at or before
	// the cutoff, optionally scoped to one confederation.
	ListExpired(ctx context.Context, cutoff time.Time, confederationID string) ([]Auction, error)
	Create(ctx context.Context, a Auction) error
	// CommitBid persists a new highest bid only when the stored current bid
	// still equals previousBid. Returns false when another bid won the race.
	CommitBid(ctx context.Context, a Auction, previousBid int64, bid Bid) (bool, error)
	// ClaimForFinalize marks the auction finalized only when it is not yet
	// finalized. Returns false when another worker already claimed it.
	ClaimForFinalize(ctx context.Context, auctionID string, at time.Time) (bool, error)
	// ReleaseClaim clears a finalize claim stamped at the given time so the
	// auction becomes eligible for the next sweep. Claims stamped at another
	// time are left alone.
	ReleaseClaim(ctx context.Context, auctionID string, at time.Time) error
	ListBids(ctx context.Context, auctionID string) ([]Bid, error)
}
