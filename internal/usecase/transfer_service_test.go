package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	idgen "github.com/ligafut/league-core/internal/platform/id"
)

type transferFixture struct {
	svc     *TransferService
	clubs   *memory.ClubRepository
	rosters *memory.RosterRepository
}

func newTransferFixture(t *testing.T, now time.Time) *transferFixture {
	t.Helper()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	clubs := memory.NewClubRepository(memory.SeedClubs())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	rosters := memory.NewRosterRepository()

	svc := NewTransferService(leagues, clubs, players, rosters, idgen.NewRandomGenerator(), nil)
	svc.now = func() time.Time { return now }

	return &transferFixture{svc: svc, clubs: clubs, rosters: rosters}
}

func TestTransferService_Buy(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	entry, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-fwd-01",
	})
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if !entry.Active || entry.ClubID != memory.ClubIDTupi {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	buyer, _, err := fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if buyer.Balance != 100_000-8_000 {
		t.Fatalf("balance not debited: %d", buyer.Balance)
	}

	// Same player twice is rejected while the first entry is active.
	_, err = fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-fwd-01",
	})
	if !errors.Is(err, roster.ErrAlreadyOnRoster) {
		t.Fatalf("expected ErrAlreadyOnRoster, got %v", err)
	}
}

func TestTransferService_Buy_InsufficientFunds(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	if err := fx.clubs.AdjustBalance(t.Context(), memory.ClubIDTupi, -95_000); err != nil {
		t.Fatalf("adjust balance: %v", err)
	}

	_, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-fwd-01",
	})
	if !errors.Is(err, club.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestTransferService_SellRestoresValueAndDeactivates(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	bought, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-mid-01",
	})
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	sold, err := fx.svc.Sell(t.Context(), SellPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		EntryID:  bought.ID,
	})
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if sold.Active || sold.ReleasedAt == nil {
		t.Fatalf("entry not released: %+v", sold)
	}

	seller, _, err := fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("get club: %v", err)
	}
	if seller.Balance != 100_000 {
		t.Fatalf("value not credited back: %d", seller.Balance)
	}

	active, err := fx.rosters.ListActiveByClub(t.Context(), memory.ClubIDTupi)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("roster entry still active: %+v", active)
	}
}

func TestTransferService_PayReleaseClauseMovesPlayerBetweenClubs(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	// pad-mid-01: value 6500, clause 12000, owned by Azulão first.
	owned, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDAzulao,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDAzulao,
		PlayerID: "pad-mid-01",
	})
	if err != nil {
		t.Fatalf("seed buy failed: %v", err)
	}

	got, err := fx.svc.PayReleaseClause(t.Context(), PayReleaseClauseInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		EntryID:  owned.ID,
	})
	if err != nil {
		t.Fatalf("pay release clause failed: %v", err)
	}
	if got.ClubID != memory.ClubIDTupi || !got.Active {
		t.Fatalf("unexpected acquired entry: %+v", got)
	}

	buyer, _, _ := fx.clubs.GetByID(t.Context(), memory.ClubIDTupi)
	if buyer.Balance != 100_000-12_000 {
		t.Fatalf("buyer not debited by clause: %d", buyer.Balance)
	}
	seller, _, _ := fx.clubs.GetByID(t.Context(), memory.ClubIDAzulao)
	if seller.Balance != 100_000-6_500+12_000 {
		t.Fatalf("seller not credited clause: %d", seller.Balance)
	}

	previous, err := fx.rosters.ListActiveByClub(t.Context(), memory.ClubIDAzulao)
	if err != nil {
		t.Fatalf("list previous owner roster: %v", err)
	}
	if len(previous) != 0 {
		t.Fatalf("player still active at previous club: %+v", previous)
	}
}

func TestTransferService_SwapExchangesEntries(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	mine, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-def-01",
	})
	if err != nil {
		t.Fatalf("seed buy failed: %v", err)
	}
	theirs, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDAzulao,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDAzulao,
		PlayerID: "pad-def-02",
	})
	if err != nil {
		t.Fatalf("seed buy failed: %v", err)
	}

	if err := fx.svc.Swap(t.Context(), SwapPlayersInput{
		UserID:       memory.OwnerIDTupi,
		LeagueID:     memory.LeagueIDSerieFantasia,
		ClubID:       memory.ClubIDTupi,
		EntryID:      mine.ID,
		OtherEntryID: theirs.ID,
	}); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	swappedOut, _, _ := fx.rosters.GetByID(t.Context(), mine.ID)
	if swappedOut.ClubID != memory.ClubIDAzulao {
		t.Fatalf("outgoing entry not reassigned: %+v", swappedOut)
	}
	swappedIn, _, _ := fx.rosters.GetByID(t.Context(), theirs.ID)
	if swappedIn.ClubID != memory.ClubIDTupi {
		t.Fatalf("incoming entry not reassigned: %+v", swappedIn)
	}
}

func TestTransferService_SwapRejectsSameClub(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newTransferFixture(t, now)

	first, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-def-01",
	})
	if err != nil {
		t.Fatalf("seed buy failed: %v", err)
	}
	second, err := fx.svc.Buy(t.Context(), BuyPlayerInput{
		UserID:   memory.OwnerIDTupi,
		LeagueID: memory.LeagueIDSerieFantasia,
		ClubID:   memory.ClubIDTupi,
		PlayerID: "pad-def-02",
	})
	if err != nil {
		t.Fatalf("seed buy failed: %v", err)
	}

	err = fx.svc.Swap(t.Context(), SwapPlayersInput{
		UserID:       memory.OwnerIDTupi,
		LeagueID:     memory.LeagueIDSerieFantasia,
		ClubID:       memory.ClubIDTupi,
		EntryID:      first.ID,
		OtherEntryID: second.ID,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
