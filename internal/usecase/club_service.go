package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
)

// StartingBalance is the budget every new club begins with.
const StartingBalance int64 = 100_000

type CreateClubInput struct {
	UserID   string
	LeagueID string
	Name     string
}

type ClubService struct {
	leagueRepo     league.Repository
	clubRepo       club.Repository
	fixtureService *FixtureService
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewClubService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	fixtureService *FixtureService,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ClubService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ClubService{
		leagueRepo:     leagueRepo,
		clubRepo:       clubRepo,
		fixtureService: fixtureService,
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Create registers a club and immediately generates its fixtures against
// every existing league club. An owner holds at most one club per league.
func (s *ClubService) Create(ctx context.Context, input CreateClubInput) (club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClubService.Create")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)

	if input.UserID == "" || input.LeagueID == "" {
		return club.Club{}, fmt.Errorf("%w: user and league ids are required", ErrInvalidInput)
	}
	if input.Name == "" {
		return club.Club{}, fmt.Errorf("%w: club name is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return club.Club{}, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return club.Club{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	owned, err := s.clubRepo.ListByOwner(ctx, input.UserID)
	if err != nil {
		return club.Club{}, fmt.Errorf("list clubs by owner: %w", err)
	}
	for _, existing := range owned {
		if existing.LeagueID == input.LeagueID {
			return club.Club{}, fmt.Errorf("%w: user already owns a club in league=%s", ErrConflict, input.LeagueID)
		}
	}

	clubID, err := s.idGen.NewID()
	if err != nil {
		return club.Club{}, fmt.Errorf("generate club id: %w", err)
	}
	c := club.Club{
		ID:        clubID,
		LeagueID:  input.LeagueID,
		OwnerID:   input.UserID,
		Name:      input.Name,
		Balance:   StartingBalance,
		CreatedAt: s.now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return club.Club{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.clubRepo.Create(ctx, c); err != nil {
		return club.Club{}, fmt.Errorf("create club: %w", err)
	}

	created, err := s.fixtureService.EnsureMatchesForClub(ctx, c.ID, true)
	if err != nil {
		// The club exists; fixture generation is retried by saving again.
		s.logger.ErrorContext(ctx, "fixture generation failed for new club", "club_id", c.ID, "error", err)
		return c, nil
	}

	s.logger.InfoContext(ctx, "club created",
		"club_id", c.ID,
		"league_id", c.LeagueID,
		"fixtures_created", created,
	)

	return c, nil
}
