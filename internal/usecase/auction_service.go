package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/player"
	"github.com/ligafut/league-core/internal/domain/roster"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
)

const defaultFinalizeWorkers = 4

// PlaceBidInput is the incoming payload for a bid.
type PlaceBidInput struct {
	UserID    string
	LeagueID  string
	ClubID    string
	AuctionID string
	Increment int64
}

// FinalizeResult summarizes one finalization sweep.
type FinalizeResult struct {
	Scanned     int  `json:"scanned"`
	Transferred int  `json:"transferred"`
	Void        int  `json:"void"`
	Claimed     int  `json:"claimed"`
	Failed      int  `json:"failed"`
	SkippedRun  bool `json:"skipped_run"`
}

type AuctionService struct {
	leagueRepo  league.Repository
	clubRepo    club.Repository
	playerRepo  player.Repository
	rosterRepo  roster.Repository
	auctionRepo auction.Repository
	idGen       idgen.Generator
	antiSnipe   time.Duration
	workers     int
	logger      *logging.Logger
	now         func() time.Time

	finalizing atomic.Bool
}

func NewAuctionService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	auctionRepo auction.Repository,
	idGen idgen.Generator,
	antiSnipe time.Duration,
	workers int,
	logger *logging.Logger,
) *AuctionService {
	if antiSnipe <= 0 {
		antiSnipe = auction.AntiSnipeWindowDefault
	}
	if workers <= 0 {
		workers = defaultFinalizeWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AuctionService{
		leagueRepo:  leagueRepo,
		clubRepo:    clubRepo,
		playerRepo:  playerRepo,
		rosterRepo:  rosterRepo,
		auctionRepo: auctionRepo,
		idGen:       idGen,
		antiSnipe:   antiSnipe,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// PlaceBid validates and commits a bid. Concurrent bidders race on a
// compare-and-swap against the previous amount; the loser gets ErrOutbid.
func (s *AuctionService) PlaceBid(ctx context.Context, input PlaceBidInput) (auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.PlaceBid")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.ClubID = strings.TrimSpace(input.ClubID)
	input.AuctionID = strings.TrimSpace(input.AuctionID)

	if input.UserID == "" || input.LeagueID == "" || input.ClubID == "" || input.AuctionID == "" {
		return auction.Auction{}, fmt.Errorf("%w: user, league, club and auction ids are required", ErrInvalidInput)
	}
	if input.Increment <= 0 {
		return auction.Auction{}, fmt.Errorf("%w: increment must be > 0", ErrInvalidInput)
	}

	lg, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return auction.Auction{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	bidder, exists, err := s.clubRepo.GetByID(ctx, input.ClubID)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("get club by id: %w", err)
	}
	if !exists {
		return auction.Auction{}, fmt.Errorf("%w: club=%s", ErrNotFound, input.ClubID)
	}
	if !bidder.OwnedBy(input.UserID, input.LeagueID) {
		return auction.Auction{}, fmt.Errorf("%w: club does not belong to the user in this league", ErrUnauthorized)
	}

	item, exists, err := s.auctionRepo.GetByID(ctx, input.AuctionID)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("get auction by id: %w", err)
	}
	if !exists || item.LeagueID != input.LeagueID {
		return auction.Auction{}, fmt.Errorf("%w: auction=%s", ErrNotFound, input.AuctionID)
	}

	if !lg.AllowsIncrement(input.Increment) {
		return auction.Auction{}, fmt.Errorf("%w: increment=%d", auction.ErrInvalidIncrement, input.Increment)
	}

	now := s.now().UTC()
	if item.FinalizedAt != nil || item.ClosedAt(now) {
		return auction.Auction{}, fmt.Errorf("%w: auction=%s", auction.ErrClosed, input.AuctionID)
	}

	previousBid := item.CurrentBid
	item.CurrentBid = previousBid + input.Increment
	item.BidderClubID = bidder.ID
	item.ExpiresAt = item.NextExpiry(now, s.antiSnipe)

	bidID, err := s.idGen.NewID()
	if err != nil {
		return auction.Auction{}, fmt.Errorf("generate bid id: %w", err)
	}
	bid := auction.Bid{
		ID:        bidID,
		AuctionID: item.ID,
		ClubID:    bidder.ID,
		Amount:    item.CurrentBid,
		PlacedAt:  now,
	}

	committed, err := s.auctionRepo.CommitBid(ctx, item, previousBid, bid)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("commit bid: %w", err)
	}
	if !committed {
		return auction.Auction{}, fmt.Errorf("%w: auction=%s", auction.ErrOutbid, item.ID)
	}

	s.logger.InfoContext(ctx, "bid accepted",
		"auction_id", item.ID,
		"club_id", bidder.ID,
		"amount", item.CurrentBid,
		"expires_at", item.ExpiresAt,
	)

	return item, nil
}

// FinalizeExpired settles every expired, unclaimed auction, optionally
// scoped to one confederation. A failed settlement is logged and its claim
// released so the next sweep picks the auction up again; the rest of the
// batch still settles.
func (s *AuctionService) FinalizeExpired(ctx context.Context, confederationID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuctionService.FinalizeExpired")
	defer span.End()

	// One sweep at a time per process. Cross-process safety comes from the
	// per-auction claim below.
	if !s.finalizing.CompareAndSwap(false, true) {
		s.logger.WarnContext(ctx, "finalize sweep already running, skipping")
		return FinalizeResult{SkippedRun: true}, nil
	}
	defer s.finalizing.Store(false)

	now := s.now().UTC()
	expired, err := s.auctionRepo.ListExpired(ctx, now, strings.TrimSpace(confederationID))
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("list expired auctions: %w", err)
	}

	result := FinalizeResult{Scanned: len(expired)}
	if len(expired) == 0 {
		return result, nil
	}

	workers := s.workers
	if workers > len(expired) {
		workers = len(expired)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("create finalize worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg          sync.WaitGroup
		claimed     atomic.Int64
		transferred atomic.Int64
		void        atomic.Int64
		failed      atomic.Int64
	)
	for _, item := range expired {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			ok, err := s.auctionRepo.ClaimForFinalize(ctx, item.ID, now)
			if err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "claim auction for finalize failed", "auction_id", item.ID, "error", err)
				return
			}
			if !ok {
				return
			}

			if !item.HasWinner() {
				claimed.Add(1)
				void.Add(1)
				s.logger.InfoContext(ctx, "auction expired without bids", "auction_id", item.ID)
				return
			}

			if err := s.settleAuction(ctx, item, now); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "settle auction failed",
					"auction_id", item.ID,
					"winner_club_id", item.BidderClubID,
					"error", err,
				)
				// Hand the auction back so the next sweep retries it. A stuck
				// claim here would strand the winner with neither the player
				// nor the money.
				if relErr := s.auctionRepo.ReleaseClaim(ctx, item.ID, now); relErr != nil {
					s.logger.ErrorContext(ctx, "release auction claim failed", "auction_id", item.ID, "error", relErr)
				}
				return
			}
			claimed.Add(1)
			transferred.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit finalize task failed", "auction_id", item.ID, "error", submitErr)
		}
	}
	wg.Wait()

	result.Claimed = int(claimed.Load())
	result.Transferred = int(transferred.Load())
	result.Void = int(void.Load())
	result.Failed = int(failed.Load())

	s.logger.InfoContext(ctx, "auction finalize sweep done",
		"scanned", result.Scanned,
		"claimed", result.Claimed,
		"transferred", result.Transferred,
		"void", result.Void,
		"failed", result.Failed,
	)

	return result, nil
}

// settleAuction applies a won auction: roster entry for the winner, debit
// the winner by the final bid, credit the seller when one exists. Auctions
// sold from the league pool have no seller club and credit nobody.
func (s *AuctionService) settleAuction(ctx context.Context, item auction.Auction, at time.Time) error {
	p, exists, err := s.playerRepo.GetByID(ctx, item.PlayerID)
	if err != nil {
		return fmt.Errorf("get auctioned player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, item.PlayerID)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate roster entry id: %w", err)
	}
	entry := roster.EntryFromPlayer(entryID, item.BidderClubID, p, at)
	entry.Value = item.CurrentBid

	if err := s.rosterRepo.Add(ctx, entry); err != nil {
		return fmt.Errorf("add roster entry for winner: %w", err)
	}
	if err := s.clubRepo.AdjustBalance(ctx, item.BidderClubID, -item.CurrentBid); err != nil {
		return fmt.Errorf("debit winning club: %w", err)
	}
	if item.SellerClubID != "" {
		if err := s.clubRepo.AdjustBalance(ctx, item.SellerClubID, item.CurrentBid); err != nil {
			return fmt.Errorf("credit selling club: %w", err)
		}
	}

	return nil
}
