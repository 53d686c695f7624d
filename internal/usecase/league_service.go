package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/payroll"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/platform/logging"
)

// ClubRoster is a club's active squad plus the financial summary the roster
// screen shows.
type ClubRoster struct {
	Club     club.Club
	Entries  []roster.Entry
	WageBill int64
}

// LeagueService serves the read side: league catalog, club listings, rosters,
// fixtures, payroll history and open auctions.
type LeagueService struct {
	leagueRepo  league.Repository
	clubRepo    club.Repository
	rosterRepo  roster.Repository
	auctionRepo auction.Repository
	fixtureRepo fixture.Repository
	payrollRepo payroll.Repository
	logger      *logging.Logger
}

func NewLeagueService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	rosterRepo roster.Repository,
	auctionRepo auction.Repository,
	fixtureRepo fixture.Repository,
	payrollRepo payroll.Repository,
	logger *logging.Logger,
) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		leagueRepo:  leagueRepo,
		clubRepo:    clubRepo,
		rosterRepo:  rosterRepo,
		auctionRepo: auctionRepo,
		fixtureRepo: fixtureRepo,
		payrollRepo: payrollRepo,
		logger:      logger,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return leagues, nil
}

func (s *LeagueService) ListClubsByLeague(ctx context.Context, leagueID string) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListClubsByLeague")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	clubs, err := s.clubRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list clubs by league: %w", err)
	}
	return clubs, nil
}

func (s *LeagueService) ListAuctionsByLeague(ctx context.Context, leagueID string) ([]auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListAuctionsByLeague")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	auctions, err := s.auctionRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list auctions by league: %w", err)
	}
	return auctions, nil
}

func (s *LeagueService) GetAuction(ctx context.Context, leagueID, auctionID string) (auction.Auction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetAuction")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return auction.Auction{}, err
	}
	auctionID = strings.TrimSpace(auctionID)
	if auctionID == "" {
		return auction.Auction{}, fmt.Errorf("%w: auction id is required", ErrInvalidInput)
	}

	a, exists, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return auction.Auction{}, fmt.Errorf("get auction by id: %w", err)
	}
	if !exists || a.LeagueID != leagueID {
		return auction.Auction{}, fmt.Errorf("%w: auction=%s", ErrNotFound, auctionID)
	}
	return a, nil
}

func (s *LeagueService) ListAuctionBids(ctx context.Context, leagueID, auctionID string) ([]auction.Bid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListAuctionBids")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	auctionID = strings.TrimSpace(auctionID)
	if auctionID == "" {
		return nil, fmt.Errorf("%w: auction id is required", ErrInvalidInput)
	}

	a, exists, err := s.auctionRepo.GetByID(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction by id: %w", err)
	}
	if !exists || a.LeagueID != leagueID {
		return nil, fmt.Errorf("%w: auction=%s", ErrNotFound, auctionID)
	}

	bids, err := s.auctionRepo.ListBids(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list auction bids: %w", err)
	}
	return bids, nil
}

func (s *LeagueService) ListFixturesByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListFixturesByLeague")
	defer span.End()

	leagueID, err := s.requireLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	fixtures, err := s.fixtureRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}
	return fixtures, nil
}

// GetClubRoster returns the active squad of a club. Reads stay open even for
// over-limit clubs, an owner must always be able to see what to sell.
func (s *LeagueService) GetClubRoster(ctx context.Context, leagueID, clubID string) (ClubRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetClubRoster")
	defer span.End()

	c, err := s.requireLeagueClub(ctx, leagueID, clubID)
	if err != nil {
		return ClubRoster{}, err
	}

	entries, err := s.rosterRepo.ListActiveByClub(ctx, c.ID)
	if err != nil {
		return ClubRoster{}, fmt.Errorf("list active roster entries: %w", err)
	}

	var wageBill int64
	for _, entry := range entries {
		wageBill += entry.Wage
	}

	return ClubRoster{Club: c, Entries: entries, WageBill: wageBill}, nil
}

func (s *LeagueService) ListPayrollCharges(ctx context.Context, leagueID, clubID string) ([]payroll.Charge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListPayrollCharges")
	defer span.End()

	c, err := s.requireLeagueClub(ctx, leagueID, clubID)
	if err != nil {
		return nil, err
	}

	charges, err := s.payrollRepo.ListByClub(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list payroll charges: %w", err)
	}
	return charges, nil
}

func (s *LeagueService) requireLeague(ctx context.Context, leagueID string) (string, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return "", fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return "", fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return "", fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return leagueID, nil
}

func (s *LeagueService) requireLeagueClub(ctx context.Context, leagueID, clubID string) (club.Club, error) {
	leagueID = strings.TrimSpace(leagueID)
	clubID = strings.TrimSpace(clubID)
	if leagueID == "" || clubID == "" {
		return club.Club{}, fmt.Errorf("%w: league and club ids are required", ErrInvalidInput)
	}

	c, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return club.Club{}, fmt.Errorf("get club by id: %w", err)
	}
	if !exists || c.LeagueID != leagueID {
		return club.Club{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	return c, nil
}
