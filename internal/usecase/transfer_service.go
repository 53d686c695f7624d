package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/player"
	"github.com/ligafut/league-core/internal/domain/roster"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
)

// BuyPlayerInput acquires a catalog player directly at his listed value.
type BuyPlayerInput struct {
	UserID   string
	LeagueID string
	ClubID   string
	PlayerID string
}

// SellPlayerInput releases a roster entry and credits the club its value.
type SellPlayerInput struct {
	UserID   string
	LeagueID string
	ClubID   string
	EntryID  string
}

// PayReleaseClauseInput pulls a player from another club by paying his
// release clause to the owning club.
type PayReleaseClauseInput struct {
	UserID   string
	LeagueID string
	ClubID   string
	EntryID  string
}

// SwapPlayersInput exchanges two active roster entries between two clubs of
// the same league. The requesting user must own the initiating club.
type SwapPlayersInput struct {
	UserID       string
	LeagueID     string
	ClubID       string
	EntryID      string
	OtherEntryID string
}

type TransferService struct {
	leagueRepo league.Repository
	clubRepo   club.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTransferService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TransferService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TransferService{
		leagueRepo: leagueRepo,
		clubRepo:   clubRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TransferService) Buy(ctx context.Context, input BuyPlayerInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Buy")
	defer span.End()

	buyer, err := s.authorizeClub(ctx, input.UserID, input.LeagueID, input.ClubID)
	if err != nil {
		return roster.Entry{}, err
	}

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return roster.Entry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return roster.Entry{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	if _, already, err := s.rosterRepo.GetActiveByClubAndPlayer(ctx, buyer.ID, p.ID); err != nil {
		return roster.Entry{}, fmt.Errorf("check existing roster entry: %w", err)
	} else if already {
		return roster.Entry{}, fmt.Errorf("%w: player=%s", roster.ErrAlreadyOnRoster, p.ID)
	}

	if buyer.Balance < p.Value {
		return roster.Entry{}, fmt.Errorf("%w: need %d, have %d", club.ErrInsufficientFunds, p.Value, buyer.Balance)
	}

	entryID, err := s.idGen.NewID()
	if err != nil {
		return roster.Entry{}, fmt.Errorf("generate roster entry id: %w", err)
	}
	entry := roster.EntryFromPlayer(entryID, buyer.ID, p, s.now().UTC())

	if err := s.rosterRepo.Add(ctx, entry); err != nil {
		return roster.Entry{}, fmt.Errorf("add roster entry: %w", err)
	}
	if err := s.clubRepo.AdjustBalance(ctx, buyer.ID, -p.Value); err != nil {
		return roster.Entry{}, fmt.Errorf("debit buying club: %w", err)
	}

	s.logger.InfoContext(ctx, "player bought",
		"club_id", buyer.ID,
		"player_id", p.ID,
		"value", p.Value,
	)

	return entry, nil
}

func (s *TransferService) Sell(ctx context.Context, input SellPlayerInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Sell")
	defer span.End()

	seller, err := s.authorizeClub(ctx, input.UserID, input.LeagueID, input.ClubID)
	if err != nil {
		return roster.Entry{}, err
	}

	entry, err := s.activeEntryForClub(ctx, seller.ID, input.EntryID)
	if err != nil {
		return roster.Entry{}, err
	}

	if err := s.rosterRepo.Deactivate(ctx, entry.ID); err != nil {
		return roster.Entry{}, fmt.Errorf("deactivate roster entry: %w", err)
	}
	if err := s.clubRepo.AdjustBalance(ctx, seller.ID, entry.Value); err != nil {
		return roster.Entry{}, fmt.Errorf("credit selling club: %w", err)
	}

	now := s.now().UTC()
	entry.Active = false
	entry.ReleasedAt = &now

	s.logger.InfoContext(ctx, "player sold",
		"club_id", seller.ID,
		"entry_id", entry.ID,
		"value", entry.Value,
	)

	return entry, nil
}

func (s *TransferService) PayReleaseClause(ctx context.Context, input PayReleaseClauseInput) (roster.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.PayReleaseClause")
	defer span.End()

	buyer, err := s.authorizeClub(ctx, input.UserID, input.LeagueID, input.ClubID)
	if err != nil {
		return roster.Entry{}, err
	}

	entryID := strings.TrimSpace(input.EntryID)
	if entryID == "" {
		return roster.Entry{}, fmt.Errorf("%w: roster entry id is required", ErrInvalidInput)
	}
	entry, exists, err := s.rosterRepo.GetByID(ctx, entryID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get roster entry: %w", err)
	}
	if !exists || !entry.Active {
		return roster.Entry{}, fmt.Errorf("%w: roster entry=%s", ErrNotFound, entryID)
	}
	if entry.ClubID == buyer.ID {
		return roster.Entry{}, fmt.Errorf("%w: player already belongs to the club", ErrConflict)
	}

	owner, exists, err := s.clubRepo.GetByID(ctx, entry.ClubID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get owning club: %w", err)
	}
	if !exists || owner.LeagueID != buyer.LeagueID {
		return roster.Entry{}, fmt.Errorf("%w: clubs must share a league", ErrConflict)
	}

	if buyer.Balance < entry.ReleaseClause {
		return roster.Entry{}, fmt.Errorf("%w: need %d, have %d", club.ErrInsufficientFunds, entry.ReleaseClause, buyer.Balance)
	}

	if err := s.rosterRepo.Deactivate(ctx, entry.ID); err != nil {
		return roster.Entry{}, fmt.Errorf("deactivate old roster entry: %w", err)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return roster.Entry{}, fmt.Errorf("generate roster entry id: %w", err)
	}
	acquired := roster.Entry{
		ID:            newID,
		ClubID:        buyer.ID,
		PlayerID:      entry.PlayerID,
		Active:        true,
		Value:         entry.Value,
		Wage:          entry.Wage,
		ReleaseClause: entry.ReleaseClause,
		AcquiredAt:    s.now().UTC(),
	}
	if err := s.rosterRepo.Add(ctx, acquired); err != nil {
		return roster.Entry{}, fmt.Errorf("add roster entry for buyer: %w", err)
	}

	if err := s.clubRepo.AdjustBalance(ctx, buyer.ID, -entry.ReleaseClause); err != nil {
		return roster.Entry{}, fmt.Errorf("debit buying club: %w", err)
	}
	if err := s.clubRepo.AdjustBalance(ctx, owner.ID, entry.ReleaseClause); err != nil {
		return roster.Entry{}, fmt.Errorf("credit owning club: %w", err)
	}

	s.logger.InfoContext(ctx, "release clause paid",
		"buyer_club_id", buyer.ID,
		"owner_club_id", owner.ID,
		"player_id", entry.PlayerID,
		"clause", entry.ReleaseClause,
	)

	return acquired, nil
}

func (s *TransferService) Swap(ctx context.Context, input SwapPlayersInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TransferService.Swap")
	defer span.End()

	mine, err := s.authorizeClub(ctx, input.UserID, input.LeagueID, input.ClubID)
	if err != nil {
		return err
	}

	entry, err := s.activeEntryForClub(ctx, mine.ID, input.EntryID)
	if err != nil {
		return err
	}

	otherID := strings.TrimSpace(input.OtherEntryID)
	if otherID == "" {
		return fmt.Errorf("%w: counterparty roster entry id is required", ErrInvalidInput)
	}
	other, exists, err := s.rosterRepo.GetByID(ctx, otherID)
	if err != nil {
		return fmt.Errorf("get counterparty roster entry: %w", err)
	}
	if !exists || !other.Active {
		return fmt.Errorf("%w: roster entry=%s", ErrNotFound, otherID)
	}
	if other.ClubID == mine.ID {
		return fmt.Errorf("%w: cannot swap inside the same club", ErrInvalidInput)
	}

	otherClub, exists, err := s.clubRepo.GetByID(ctx, other.ClubID)
	if err != nil {
		return fmt.Errorf("get counterparty club: %w", err)
	}
	if !exists || otherClub.LeagueID != mine.LeagueID {
		return fmt.Errorf("%w: clubs must share a league", ErrConflict)
	}

	if err := s.rosterRepo.Reassign(ctx, entry.ID, otherClub.ID); err != nil {
		return fmt.Errorf("reassign outgoing entry: %w", err)
	}
	if err := s.rosterRepo.Reassign(ctx, other.ID, mine.ID); err != nil {
		return fmt.Errorf("reassign incoming entry: %w", err)
	}

	s.logger.InfoContext(ctx, "players swapped",
		"club_id", mine.ID,
		"other_club_id", otherClub.ID,
		"entry_id", entry.ID,
		"other_entry_id", other.ID,
	)

	return nil
}

func (s *TransferService) authorizeClub(ctx context.Context, userID, leagueID, clubID string) (club.Club, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	clubID = strings.TrimSpace(clubID)
	if userID == "" || leagueID == "" || clubID == "" {
		return club.Club{}, fmt.Errorf("%w: user, league and club ids are required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return club.Club{}, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return club.Club{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	c, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by id: %w", err)
	}
	if !exists {
		return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	if !c.OwnedBy(userID, leagueID) {
		return club.Club{}, fmt.Errorf("%w: club does not belong to the user in this league", ErrUnauthorized)
	}

	return c, nil
}

func (s *TransferService) activeEntryForClub(ctx context.Context, clubID, entryID string) (roster.Entry, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return roster.Entry{}, fmt.Errorf("%w: roster entry id is required", ErrInvalidInput)
	}

	entry, exists, err := s.rosterRepo.GetByID(ctx, entryID)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("get roster entry: %w", err)
	}
	if !exists || !entry.Active || entry.ClubID != clubID {
		return roster.Entry{}, fmt.Errorf("%w: roster entry=%s", ErrNotFound, entryID)
	}

	return entry, nil
}
