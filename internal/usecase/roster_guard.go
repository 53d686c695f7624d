package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/platform/logging"
)

// RosterGuard decides whether a club is frozen by the closed-market roster
// limit. The HTTP layer consults it before club mutations run.
type RosterGuard struct {
	leagueRepo league.Repository
	clubRepo   club.Repository
	rosterRepo roster.Repository
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterGuard(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	rosterRepo roster.Repository,
	logger *logging.Logger,
) *RosterGuard {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterGuard{
		leagueRepo: leagueRepo,
		clubRepo:   clubRepo,
		rosterRepo: rosterRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// IsOverLimit is true only when both hold: the league market is closed right
// now, and the club fields more than the active-roster limit. A club at
// exactly the limit is never blocked.
func (g *RosterGuard) IsOverLimit(ctx context.Context, leagueID, clubID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterGuard.IsOverLimit")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	clubID = strings.TrimSpace(clubID)
	if leagueID == "" || clubID == "" {
		return false, fmt.Errorf("%w: league and club ids are required", ErrInvalidInput)
	}

	lg, exists, err := g.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return false, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return false, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if !lg.MarketClosedAt(g.now().UTC()) {
		return false, nil
	}

	count, err := g.rosterRepo.CountActiveByClub(ctx, clubID)
	if err != nil {
		return false, fmt.Errorf("count active roster entries: %w", err)
	}

	return count > roster.ActiveLimit, nil
}

// ResolveOverLimitClub scans the user's clubs when a request carries no
// league context and returns the first over-limit one. Which club wins when
// several are over limit at once is not part of the contract.
func (g *RosterGuard) ResolveOverLimitClub(ctx context.Context, userID string) (club.Club, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterGuard.ResolveOverLimitClub")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return club.Club{}, false, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	clubs, err := g.clubRepo.ListByOwner(ctx, userID)
	if err != nil {
		return club.Club{}, false, fmt.Errorf("list clubs by owner: %w", err)
	}

	for _, c := range clubs {
		over, err := g.IsOverLimit(ctx, c.LeagueID, c.ID)
		if err != nil {
			g.logger.WarnContext(ctx, "over-limit check failed during fallback scan",
				"club_id", c.ID,
				"league_id", c.LeagueID,
				"error", err,
			)
			continue
		}
		if over {
			return c, true, nil
		}
	}

	return club.Club{}, false, nil
}
