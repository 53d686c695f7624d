package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/league"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
)

const defaultForceWorkers = 4

// ForceOverdueResult summarizes one forced-scheduling sweep.
type ForceOverdueResult struct {
	Scanned int `json:"scanned"`
	Forced  int `json:"forced"`
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
}

type FixtureService struct {
	leagueRepo  league.Repository
	clubRepo    club.Repository
	fixtureRepo fixture.Repository
	idGen       idgen.Generator
	workers     int
	logger      *logging.Logger
	now         func() time.Time
}

func NewFixtureService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	fixtureRepo fixture.Repository,
	idGen idgen.Generator,
	workers int,
	logger *logging.Logger,
) *FixtureService {
	if workers <= 0 {
		workers = defaultForceWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureService{
		leagueRepo:  leagueRepo,
		clubRepo:    clubRepo,
		fixtureRepo: fixtureRepo,
		idGen:       idGen,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// EnsureMatchesForClub creates one fixture against every other league club
// when a club is newly created. Existing pairings are skipped, so saving a
// club twice never duplicates fixtures.
func (s *FixtureService) EnsureMatchesForClub(ctx context.Context, clubID string, isNewClub bool) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.EnsureMatchesForClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return 0, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}
	if !isNewClub {
		return 0, nil
	}

	c, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return 0, fmt.Errorf("get club by id: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}

	others, err := s.clubRepo.ListByLeague(ctx, c.LeagueID)
	if err != nil {
		return 0, fmt.Errorf("list league clubs: %w", err)
	}

	now := s.now().UTC()
	created := 0
	for i, opponent := range others {
		if opponent.ID == c.ID {
			continue
		}

		paired, err := s.fixtureRepo.ExistsForPairing(ctx, c.LeagueID, c.ID, opponent.ID)
		if err != nil {
			return created, fmt.Errorf("check pairing club=%s opponent=%s: %w", c.ID, opponent.ID, err)
		}
		if paired {
			continue
		}

		fixtureID, err := s.idGen.NewID()
		if err != nil {
			return created, fmt.Errorf("generate fixture id: %w", err)
		}

		// Alternate home advantage so a late-joining club does not host
		// every match.
		home, away := c.ID, opponent.ID
		if i%2 == 1 {
			home, away = opponent.ID, c.ID
		}

		f := fixture.Fixture{
			ID:         fixtureID,
			LeagueID:   c.LeagueID,
			HomeClubID: home,
			AwayClubID: away,
			Status:     fixture.StatusConfirmationRequired,
			CreatedAt:  now,
		}
		if err := f.Validate(); err != nil {
			return created, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.fixtureRepo.Create(ctx, f); err != nil {
			return created, fmt.Errorf("create fixture: %w", err)
		}
		created++
	}

	s.logger.InfoContext(ctx, "fixtures ensured for club",
		"club_id", c.ID,
		"league_id", c.LeagueID,
		"created", created,
	)

	return created, nil
}

// ForceSchedule moves one fixture out of CONFIRMATION_REQUIRED once its
// league confirmation deadline has elapsed. UTC on both sides keeps the
// comparison stable across server timezones.
func (s *FixtureService) ForceSchedule(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ForceSchedule")
	defer span.End()

	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture id is required", ErrInvalidInput)
	}

	f, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	if fixture.NormalizeStatus(f.Status) != fixture.StatusConfirmationRequired {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s status=%s", ErrConflict, f.ID, f.Status)
	}

	lg, exists, err := s.leagueRepo.GetByID(ctx, f.LeagueID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: league=%s", ErrNotFound, f.LeagueID)
	}

	now := s.now().UTC()
	if now.Before(lg.ConfirmDeadline(f.CreatedAt)) {
		return fixture.Fixture{}, fmt.Errorf("%w: confirmation deadline not reached for fixture=%s", ErrConflict, f.ID)
	}

	forced, err := s.fixtureRepo.MarkScheduled(ctx, f.ID, now, true)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("mark fixture scheduled: %w", err)
	}
	if !forced {
		// Someone confirmed or forced it between the read and the update.
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s was already scheduled", ErrConflict, f.ID)
	}

	f.Status = fixture.StatusScheduled
	f.ScheduledAt = &now
	f.ForcedSchedule = true

	s.logger.InfoContext(ctx, "fixture force-scheduled",
		"fixture_id", f.ID,
		"league_id", f.LeagueID,
	)

	return f, nil
}

// ForceOverdue sweeps every fixture whose confirmation deadline has elapsed
// and forces it onto the schedule. Per-fixture failures are logged and
// retried by the next sweep.
func (s *FixtureService) ForceOverdue(ctx context.Context) (ForceOverdueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ForceOverdue")
	defer span.End()

	now := s.now().UTC()
	awaiting, err := s.fixtureRepo.ListAwaitingConfirmation(ctx, now)
	if err != nil {
		return ForceOverdueResult{}, fmt.Errorf("list fixtures awaiting confirmation: %w", err)
	}

	result := ForceOverdueResult{Scanned: len(awaiting)}
	if len(awaiting) == 0 {
		return result, nil
	}

	deadlines := make(map[string]league.League, 4)
	overdue := make([]fixture.Fixture, 0, len(awaiting))
	for _, f := range awaiting {
		lg, ok := deadlines[f.LeagueID]
		if !ok {
			loaded, exists, err := s.leagueRepo.GetByID(ctx, f.LeagueID)
			if err != nil {
				// One broken league lookup must not stall the whole sweep.
				result.Failed++
				s.logger.ErrorContext(ctx, "get league for fixture failed", "fixture_id", f.ID, "league_id", f.LeagueID, "error", err)
				continue
			}
			if !exists {
				s.logger.WarnContext(ctx, "fixture references missing league", "fixture_id", f.ID, "league_id", f.LeagueID)
				continue
			}
			deadlines[f.LeagueID] = loaded
			lg = loaded
		}

		if now.Before(lg.ConfirmDeadline(f.CreatedAt)) {
			result.Pending++
			continue
		}
		overdue = append(overdue, f)
	}

	var forced, failed atomic.Int64
	workers := pool.New().WithMaxGoroutines(s.workers)
	for _, f := range overdue {
		f := f
		workers.Go(func() {
			ok, err := s.fixtureRepo.MarkScheduled(ctx, f.ID, now, true)
			if err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "force-schedule fixture failed", "fixture_id", f.ID, "error", err)
				return
			}
			if ok {
				forced.Add(1)
			}
		})
	}
	workers.Wait()

	result.Forced = int(forced.Load())
	result.Failed += int(failed.Load())

	s.logger.InfoContext(ctx, "force-schedule sweep done",
		"scanned", result.Scanned,
		"forced", result.Forced,
		"pending", result.Pending,
		"failed", result.Failed,
	)

	return result, nil
}
