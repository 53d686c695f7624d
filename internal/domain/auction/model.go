package auction

import (
	"errors"
	"fmt"
	"time"
)

// AntiSnipeWindowDefault is how close to expiry a bid must land to push the
// expiry forward, and by how much it pushes it.
const AntiSnipeWindowDefault = 2 * time.Minute

var (
	// ErrClosed rejects bids placed at or after the auction expiry.
	ErrClosed = errors.New("auction is closed")
	// ErrInvalidIncrement rejects bids outside the league's increment set.
	ErrInvalidIncrement = errors.New("bid increment is not allowed")
	// ErrAlreadyFinalized reports a second finalization attempt.
	ErrAlreadyFinalized = errors.New("auction is already finalized")
	// ErrOutbid reports a lost compare-and-swap race between two bidders.
	ErrOutbid = errors.New("another bid was committed first")
)

// Auction sells one catalog player inside one league. The bidder club is a
// reference, not ownership: the club keeps living in its own aggregate.
type Auction struct {
	ID           string
	LeagueID     string
	PlayerID     string
	SellerClubID string
	CurrentBid   int64
	BidderClubID string
	ExpiresAt    time.Time
	FinalizedAt  *time.Time
	CreatedAt    time.Time
}

// Bid is one accepted bid, kept as history.
type Bid struct {
	ID        string
	AuctionID string
	ClubID    string
	Amount    int64
	PlacedAt  time.Time
}

func (a Auction) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("auction id is required")
	}
	if a.LeagueID == "" {
		return fmt.Errorf("auction league id is required")
	}
	if a.PlayerID == "" {
		return fmt.Errorf("auction player id is required")
	}
	if a.CurrentBid < 0 {
		return fmt.Errorf("auction current bid cannot be negative")
	}
	if a.ExpiresAt.IsZero() {
		return fmt.Errorf("auction expiry is required")
	}

	return nil
}

// ClosedAt reports whether the auction no longer accepts bids at the given
// instant.
func (a Auction) ClosedAt(at time.Time) bool {
	return !at.UTC().Before(a.ExpiresAt.UTC())
}

// HasWinner reports whether finalization should transfer the player.
// Auctions that expire without a single bid are finalized as void.
func (a Auction) HasWinner() bool {
	return a.BidderClubID != ""
}

// NextExpiry applies the anti-snipe rule: a bid landing inside the window
// pushes the expiry forward by the window, otherwise the expiry stands.
// The expiry never moves backwards.
func (a Auction) NextExpiry(bidAt time.Time, window time.Duration) time.Time {
	if window <= 0 {
		window = AntiSnipeWindowDefault
	}
	bidAt = bidAt.UTC()
	expiry := a.ExpiresAt.UTC()
	if expiry.Sub(bidAt) <= window {
		return expiry.Add(window)
	}
	return expiry
}
