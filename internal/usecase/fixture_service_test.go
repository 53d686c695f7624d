package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	idgen "github.com/ligafut/league-core/internal/platform/id"
)

type fixtureFixture struct {
	svc      *FixtureService
	leagues  *memory.LeagueRepository
	fixtures *memory.FixtureRepository
}

func newFixtureFixture(t *testing.T, now time.Time) *fixtureFixture {
	t.Helper()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	clubs := memory.NewClubRepository(memory.SeedClubs())
	fixtures := memory.NewFixtureRepository()

	svc := NewFixtureService(leagues, clubs, fixtures, idgen.NewRandomGenerator(), 2, nil)
	svc.now = func() time.Time { return now }

	return &fixtureFixture{svc: svc, leagues: leagues, fixtures: fixtures}
}

func TestFixtureService_EnsureMatchesForClub(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newFixtureFixture(t, now)

	created, err := fx.svc.EnsureMatchesForClub(t.Context(), memory.ClubIDTupi, true)
	if err != nil {
		t.Fatalf("ensure matches failed: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 fixtures, got %d", created)
	}

	all, err := fx.fixtures.ListByLeague(t.Context(), memory.LeagueIDSerieFantasia)
	if err != nil {
		t.Fatalf("list fixtures: %v", err)
	}
	for _, f := range all {
		if f.Status != fixture.StatusConfirmationRequired {
			t.Fatalf("new fixture not awaiting confirmation: %+v", f)
		}
	}

	// Saving the club again must not duplicate pairings.
	created, err = fx.svc.EnsureMatchesForClub(t.Context(), memory.ClubIDTupi, true)
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("duplicate fixtures created: %d", created)
	}

	// Not a new club: nothing happens at all.
	created, err = fx.svc.EnsureMatchesForClub(t.Context(), memory.ClubIDAzulao, false)
	if err != nil {
		t.Fatalf("ensure for existing club failed: %v", err)
	}
	if created != 0 {
		t.Fatalf("existing club grew fixtures: %d", created)
	}
}

func TestFixtureService_ForceScheduleHonorsDeadline(t *testing.T) {
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newFixtureFixture(t, base)

	f := fixture.Fixture{
		ID:         "fixture-1",
		LeagueID:   memory.LeagueIDSerieFantasia,
		HomeClubID: memory.ClubIDTupi,
		AwayClubID: memory.ClubIDAzulao,
		Status:     fixture.StatusConfirmationRequired,
		CreatedAt:  base,
	}
	if err := fx.fixtures.Create(t.Context(), f); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}

	// 47h after creation: still inside the 48h confirmation window.
	fx.svc.now = func() time.Time { return base.Add(47 * time.Hour) }
	if _, err := fx.svc.ForceSchedule(t.Context(), f.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict before deadline, got %v", err)
	}

	// 49h after creation: overdue, gets forced.
	fx.svc.now = func() time.Time { return base.Add(49 * time.Hour) }
	got, err := fx.svc.ForceSchedule(t.Context(), f.ID)
	if err != nil {
		t.Fatalf("force schedule failed: %v", err)
	}
	if got.Status != fixture.StatusScheduled || !got.ForcedSchedule {
		t.Fatalf("fixture not force-scheduled: %+v", got)
	}
	if got.ScheduledAt == nil || !got.ScheduledAt.Equal(base.Add(49*time.Hour)) {
		t.Fatalf("unexpected scheduled_at: %+v", got.ScheduledAt)
	}

	// Forcing a scheduled fixture again conflicts.
	if _, err := fx.svc.ForceSchedule(t.Context(), f.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second force, got %v", err)
	}
}

func TestFixtureService_ForceOverdueSweep(t *testing.T) {
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	fx := newFixtureFixture(t, base.Add(50*time.Hour))

	overdue := fixture.Fixture{
		ID:         "fixture-overdue",
		LeagueID:   memory.LeagueIDSerieFantasia,
		HomeClubID: memory.ClubIDTupi,
		AwayClubID: memory.ClubIDAzulao,
		Status:     fixture.StatusConfirmationRequired,
		CreatedAt:  base,
	}
	fresh := fixture.Fixture{
		ID:         "fixture-fresh",
		LeagueID:   memory.LeagueIDSerieFantasia,
		HomeClubID: memory.ClubIDTupi,
		AwayClubID: memory.ClubIDColibri,
		Status:     fixture.StatusConfirmationRequired,
		CreatedAt:  base.Add(49 * time.Hour),
	}
	for _, f := range []fixture.Fixture{overdue, fresh} {
		if err := fx.fixtures.Create(t.Context(), f); err != nil {
			t.Fatalf("seed fixture %s: %v", f.ID, err)
		}
	}

	result, err := fx.svc.ForceOverdue(t.Context())
	if err != nil {
		t.Fatalf("force overdue failed: %v", err)
	}
	if result.Scanned != 2 || result.Forced != 1 || result.Pending != 1 || result.Failed != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, _, err := fx.fixtures.GetByID(t.Context(), overdue.ID)
	if err != nil {
		t.Fatalf("get overdue fixture: %v", err)
	}
	if got.Status != fixture.StatusScheduled || !got.ForcedSchedule {
		t.Fatalf("overdue fixture not forced: %+v", got)
	}

	untouched, _, err := fx.fixtures.GetByID(t.Context(), fresh.ID)
	if err != nil {
		t.Fatalf("get fresh fixture: %v", err)
	}
	if untouched.Status != fixture.StatusConfirmationRequired {
		t.Fatalf("fresh fixture was forced early: %+v", untouched)
	}

	// Second sweep finds only the fresh one, still pending.
	result, err = fx.svc.ForceOverdue(t.Context())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if result.Scanned != 1 || result.Forced != 0 || result.Pending != 1 {
		t.Fatalf("sweep not idempotent: %+v", result)
	}
}

type flakyLeagueRepo struct {
	*memory.LeagueRepository
	failID string
}

func (r *flakyLeagueRepo) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	if leagueID == r.failID {
		return league.League{}, false, errors.New("storage unavailable")
	}
	return r.LeagueRepository.GetByID(ctx, leagueID)
}

func TestFixtureService_ForceOverdueIsolatesLeagueLookupFailures(t *testing.T) {
	base := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	leagues := &flakyLeagueRepo{
		LeagueRepository: memory.NewLeagueRepository(memory.SeedLeagues()),
		failID:           "lg-broken",
	}
	clubs := memory.NewClubRepository(memory.SeedClubs())
	fixtures := memory.NewFixtureRepository()

	svc := NewFixtureService(leagues, clubs, fixtures, idgen.NewRandomGenerator(), 2, nil)
	svc.now = func() time.Time { return base.Add(50 * time.Hour) }

	broken := fixture.Fixture{
		ID:         "fixture-broken-league",
		LeagueID:   "lg-broken",
		HomeClubID: memory.ClubIDTupi,
		AwayClubID: memory.ClubIDAzulao,
		Status:     fixture.StatusConfirmationRequired,
		CreatedAt:  base,
	}
	overdue := fixture.Fixture{
		ID:         "fixture-overdue",
		LeagueID:   memory.LeagueIDSerieFantasia,
		HomeClubID: memory.ClubIDTupi,
		AwayClubID: memory.ClubIDColibri,
		Status:     fixture.StatusConfirmationRequired,
		CreatedAt:  base,
	}
	for _, f := range []fixture.Fixture{broken, overdue} {
		if err := fixtures.Create(t.Context(), f); err != nil {
			t.Fatalf("seed fixture %s: %v", f.ID, err)
		}
	}

	// The broken league lookup counts as failed; the healthy fixture still
	// gets forced.
	result, err := svc.ForceOverdue(t.Context())
	if err != nil {
		t.Fatalf("force overdue failed: %v", err)
	}
	if result.Scanned != 2 || result.Forced != 1 || result.Failed != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	got, _, err := fixtures.GetByID(t.Context(), overdue.ID)
	if err != nil {
		t.Fatalf("get overdue fixture: %v", err)
	}
	if got.Status != fixture.StatusScheduled || !got.ForcedSchedule {
		t.Fatalf("healthy fixture not forced: %+v", got)
	}
}
