package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	idgen "github.com/ligafut/league-core/internal/platform/id"
)

type auctionFixture struct {
	svc      *AuctionService
	leagues  *memory.LeagueRepository
	clubs    *memory.ClubRepository
	rosters  *memory.RosterRepository
	auctions *memory.AuctionRepository
}

func newAuctionFixture(t *testing.T, now time.Time) *auctionFixture {
	t.Helper()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	clubs := memory.NewClubRepository(memory.SeedClubs())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	rosters := memory.NewRosterRepository()
	auctions := memory.NewAuctionRepository(leagues)

	svc := NewAuctionService(leagues, clubs, players, rosters, auctions, idgen.NewRandomGenerator(), 2*time.Minute, 2, nil)
	svc.now = func() time.Time { return now }

	return &auctionFixture{
		svc:      svc,
		leagues:  leagues,
		clubs:    clubs,
		rosters:  rosters,
		auctions: auctions,
	}
}

func seedAuction(t *testing.T, repo *memory.AuctionRepository, expiresAt time.Time) auction.Auction {
	t.Helper()

	item := auction.Auction{
		ID:           "auction-1",
		LeagueID:     memory.LeagueIDSerieFantasia,
		PlayerID:     "pad-fwd-01",
		SellerClubID: memory.ClubIDColibri,
		CurrentBid:   1_000,
		ExpiresAt:    expiresAt,
		CreatedAt:    expiresAt.Add(-time.Hour),
	}
	if err := repo.Create(t.Context(), item); err != nil {
		t.Fatalf("seed auction: %v", err)
	}
	return item
}

func TestAuctionService_PlaceBid_AllowedIncrement(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(30*time.Minute))

	got, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-1",
		Increment: 500,
	})
	if err != nil {
		t.Fatalf("place bid failed: %v", err)
	}
	if got.CurrentBid != 1_500 {
		t.Fatalf("unexpected bid: got=%d want=1500", got.CurrentBid)
	}
	if got.BidderClubID != memory.ClubIDTupi {
		t.Fatalf("unexpected bidder: %s", got.BidderClubID)
	}

	bids, err := fx.auctions.ListBids(t.Context(), "auction-1")
	if err != nil {
		t.Fatalf("list bids: %v", err)
	}
	if len(bids) != 1 || bids[0].Amount != 1_500 {
		t.Fatalf("unexpected bid history: %+v", bids)
	}
}

func TestAuctionService_PlaceBid_RejectIncrementOutsideSet(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(30*time.Minute))

	_, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-1",
		Increment: 250,
	})
	if !errors.Is(err, auction.ErrInvalidIncrement) {
		t.Fatalf("expected ErrInvalidIncrement, got %v", err)
	}
}

func TestAuctionService_PlaceBid_RejectForeignClub(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(30*time.Minute))

	_, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDAzulao,
		AuctionID: "auction-1",
		Increment: 500,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuctionService_PlaceBid_RejectAfterExpiry(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now)

	_, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-1",
		Increment: 500,
	})
	if !errors.Is(err, auction.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestAuctionService_PlaceBid_AntiSnipeExtendsOnlyInsideWindow(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)

	// Far from expiry: no extension.
	farExpiry := now.Add(30 * time.Minute)
	seedAuction(t, fx.auctions, farExpiry)
	got, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-1",
		Increment: 100,
	})
	if err != nil {
		t.Fatalf("place bid failed: %v", err)
	}
	if !got.ExpiresAt.Equal(farExpiry) {
		t.Fatalf("expiry moved outside window: got=%v want=%v", got.ExpiresAt, farExpiry)
	}

	// Inside the window: pushed forward by the window.
	nearExpiry := now.Add(time.Minute)
	late := auction.Auction{
		ID:        "auction-2",
		LeagueID:  memory.LeagueIDSerieFantasia,
		PlayerID:  "pad-fwd-02",
		ExpiresAt: nearExpiry,
		CreatedAt: now.Add(-time.Hour),
	}
	if err := fx.auctions.Create(t.Context(), late); err != nil {
		t.Fatalf("seed auction: %v", err)
	}
	got, err = fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-2",
		Increment: 100,
	})
	if err != nil {
		t.Fatalf("place bid failed: %v", err)
	}
	want := nearExpiry.Add(2 * time.Minute)
	if !got.ExpiresAt.Equal(want) {
		t.Fatalf("expiry not extended: got=%v want=%v", got.ExpiresAt, want)
	}
}

type losingBidAuctionRepo struct {
	*memory.AuctionRepository
}

func (r losingBidAuctionRepo) CommitBid(context.Context, auction.Auction, int64, auction.Bid) (bool, error) {
	return false, nil
}

func TestAuctionService_PlaceBid_LostRaceReportsOutbid(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(30*time.Minute))

	svc := NewAuctionService(fx.leagues, fx.clubs, memory.NewPlayerRepository(memory.SeedPlayers()), fx.rosters,
		losingBidAuctionRepo{fx.auctions}, idgen.NewRandomGenerator(), 2*time.Minute, 2, nil)
	svc.now = func() time.Time { return now }

	_, err := svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: "auction-1",
		Increment: 500,
	})
	if !errors.Is(err, auction.ErrOutbid) {
		t.Fatalf("expected ErrOutbid, got %v", err)
	}
}

func TestAuctionService_FinalizeExpired_TransfersAndIsIdempotent(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now.Add(-time.Hour))
	item := seedAuction(t, fx.auctions, now.Add(-30*time.Minute))

	// Winning bid before expiry.
	if _, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: item.ID,
		Increment: 1000,
	}); err != nil {
		t.Fatalf("place winning bid: %v", err)
	}

	fx.svc.now = func() time.Time { return now }

	result, err := fx.svc.FinalizeExpired(t.Context(), "")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Transferred != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	winner, _, err := fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("get winner club: %v", err)
	}
	if winner.Balance != 100_000-2_000 {
		t.Fatalf("winner balance not debited: %d", winner.Balance)
	}
	seller, _, err := fx.clubs.GetByID(t.Context(), memory.ClubIDColibri)
	if err != nil {
		t.Fatalf("get seller club: %v", err)
	}
	if seller.Balance != 100_000+2_000 {
		t.Fatalf("seller balance not credited: %d", seller.Balance)
	}
	entries, err := fx.rosters.ListActiveByClub(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("list winner roster: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != "pad-fwd-01" {
		t.Fatalf("player not transferred: %+v", entries)
	}

	// Second sweep must claim nothing.
	result, err = fx.svc.FinalizeExpired(t.Context(), "")
	if err != nil {
		t.Fatalf("second finalize failed: %v", err)
	}
	if result.Claimed != 0 || result.Transferred != 0 {
		t.Fatalf("finalize not idempotent: %+v", result)
	}
	entries, _ = fx.rosters.ListActiveByClub(t.Context(), memory.ClubIDTupi)
	if len(entries) != 1 {
		t.Fatalf("duplicate transfer after second sweep: %d entries", len(entries))
	}
}

type flakyRosterRepo struct {
	*memory.RosterRepository
	failures int
}

func (r *flakyRosterRepo) Add(ctx context.Context, entry roster.Entry) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("storage unavailable")
	}
	return r.RosterRepository.Add(ctx, entry)
}

func TestAuctionService_FinalizeExpired_RetriesAfterSettleFailure(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now.Add(-time.Hour))
	item := seedAuction(t, fx.auctions, now.Add(-30*time.Minute))

	rosters := &flakyRosterRepo{RosterRepository: fx.rosters, failures: 1}
	svc := NewAuctionService(fx.leagues, fx.clubs, memory.NewPlayerRepository(memory.SeedPlayers()), rosters,
		fx.auctions, idgen.NewRandomGenerator(), 2*time.Minute, 2, nil)
	svc.now = fx.svc.now

	if _, err := fx.svc.PlaceBid(t.Context(), PlaceBidInput{
		UserID:    memory.OwnerIDTupi,
		LeagueID:  memory.LeagueIDSerieFantasia,
		ClubID:    memory.ClubIDTupi,
		AuctionID: item.ID,
		Increment: 1000,
	}); err != nil {
		t.Fatalf("place winning bid: %v", err)
	}

	svc.now = func() time.Time { return now }

	// First sweep hits the roster outage: nothing settles and the auction
	// must stay unclaimed so it shows up again.
	result, err := svc.FinalizeExpired(t.Context(), "")
	if err != nil {
		t.Fatalf("first finalize failed: %v", err)
	}
	if result.Failed != 1 || result.Transferred != 0 || result.Claimed != 0 {
		t.Fatalf("unexpected first sweep result: %+v", result)
	}
	stored, _, err := fx.auctions.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get auction: %v", err)
	}
	if stored.FinalizedAt != nil {
		t.Fatalf("claim not released after failed settlement: %+v", stored.FinalizedAt)
	}
	winner, _, _ := fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if winner.Balance != 100_000 {
		t.Fatalf("winner debited without a transfer: %d", winner.Balance)
	}

	// Second sweep settles normally.
	result, err = svc.FinalizeExpired(t.Context(), "")
	if err != nil {
		t.Fatalf("second finalize failed: %v", err)
	}
	if result.Transferred != 1 || result.Failed != 0 || result.Claimed != 1 {
		t.Fatalf("unexpected second sweep result: %+v", result)
	}
	winner, _, _ = fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if winner.Balance != 100_000-2_000 {
		t.Fatalf("winner balance after retry: %d", winner.Balance)
	}
	entries, err := fx.rosters.ListActiveByClub(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("list winner roster: %v", err)
	}
	if len(entries) != 1 || entries[0].PlayerID != "pad-fwd-01" {
		t.Fatalf("player not transferred on retry: %+v", entries)
	}
}

func TestAuctionService_FinalizeExpired_VoidWithoutBids(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(-time.Minute))

	result, err := fx.svc.FinalizeExpired(t.Context(), "")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Void != 1 || result.Transferred != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAuctionService_FinalizeExpired_ConfederationScope(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newAuctionFixture(t, now)
	seedAuction(t, fx.auctions, now.Add(-time.Minute))

	result, err := fx.svc.FinalizeExpired(t.Context(), "conf-outra")
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Scanned != 0 {
		t.Fatalf("scope filter leaked: %+v", result)
	}

	result, err = fx.svc.FinalizeExpired(t.Context(), memory.ConfederationIDSul)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if result.Scanned != 1 {
		t.Fatalf("scoped sweep missed auction: %+v", result)
	}
}
