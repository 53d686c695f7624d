package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/league"
)

type AuctionRepository struct {
	mu      sync.Mutex
	items   map[string]auction.Auction
	bids    map[string][]auction.Bid
	orders  []string
	leagues league.Repository
}

// NewAuctionRepository keeps auctions in memory. The league repository is
// only consulted to resolve confederation scoping in ListExpired; pass nil
// when the scope filter is not exercised.
func NewAuctionRepository(leagues league.Repository) *AuctionRepository {
	return &AuctionRepository{
		items:   make(map[string]auction.Auction),
		bids:    make(map[string][]auction.Bid),
		leagues: leagues,
	}
}

func (r *AuctionRepository) GetByID(_ context.Context, auctionID string) (auction.Auction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[auctionID]
	if !ok {
		return auction.Auction{}, false, nil
	}

	return cloneAuction(a), true, nil
}

func (r *AuctionRepository) ListByLeague(_ context.Context, leagueID string) ([]auction.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]auction.Auction, 0, len(r.orders))
	for _, id := range r.orders {
		if a := r.items[id]; a.LeagueID == leagueID {
			out = append(out, cloneAuction(a))
		}
	}

	return out, nil
}

func (r *AuctionRepository) ListExpired(ctx context.Context, cutoff time.Time, confederationID string) ([]auction.Auction, error) {
	r.mu.Lock()
	candidates := make([]auction.Auction, 0, len(r.orders))
	for _, id := range r.orders {
		a := r.items[id]
		if a.FinalizedAt != nil {
			continue
		}
		if a.ExpiresAt.After(cutoff) {
			continue
		}
		candidates = append(candidates, cloneAuction(a))
	}
	r.mu.Unlock()

	if confederationID == "" || r.leagues == nil {
		return candidates, nil
	}

	out := make([]auction.Auction, 0, len(candidates))
	for _, a := range candidates {
		lg, exists, err := r.leagues.GetByID(ctx, a.LeagueID)
		if err != nil {
			return nil, err
		}
		if exists && lg.ConfederationID == confederationID {
			out = append(out, a)
		}
	}

	return out, nil
}

func (r *AuctionRepository) Create(_ context.Context, a auction.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; ok {
		return fmt.Errorf("auction %s already exists", a.ID)
	}
	r.items[a.ID] = cloneAuction(a)
	r.orders = append(r.orders, a.ID)

	return nil
}

func (r *AuctionRepository) CommitBid(_ context.Context, a auction.Auction, previousBid int64, bid auction.Bid) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[a.ID]
	if !ok {
		return false, fmt.Errorf("auction %s not found", a.ID)
	}
	if stored.FinalizedAt != nil || stored.CurrentBid != previousBid {
		return false, nil
	}

	stored.CurrentBid = a.CurrentBid
	stored.BidderClubID = a.BidderClubID
	if a.ExpiresAt.After(stored.ExpiresAt) {
		stored.ExpiresAt = a.ExpiresAt
	}
	r.items[a.ID] = stored
	r.bids[a.ID] = append(r.bids[a.ID], bid)

	return true, nil
}

func (r *AuctionRepository) ClaimForFinalize(_ context.Context, auctionID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[auctionID]
	if !ok {
		return false, fmt.Errorf("auction %s not found", auctionID)
	}
	if a.FinalizedAt != nil {
		return false, nil
	}
	at = at.UTC()
	a.FinalizedAt = &at
	r.items[auctionID] = a

	return true, nil
}

func (r *AuctionRepository) ReleaseClaim(_ context.Context, auctionID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[auctionID]
	if !ok {
		return fmt.Errorf("auction %s not found", auctionID)
	}
	if a.FinalizedAt == nil || !a.FinalizedAt.Equal(at.UTC()) {
		return nil
	}
	a.FinalizedAt = nil
	r.items[auctionID] = a

	return nil
}

func (r *AuctionRepository) ListBids(_ context.Context, auctionID string) ([]auction.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]auction.Bid(nil), r.bids[auctionID]...), nil
}

func cloneAuction(a auction.Auction) auction.Auction {
	copied := a
	if a.FinalizedAt != nil {
		at := *a.FinalizedAt
		copied.FinalizedAt = &at
	}
	return copied
}
