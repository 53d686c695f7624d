package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ligafut/league-core/internal/domain/fixture"
)

type FixtureRepository struct {
	mu     sync.Mutex
	items  map[string]fixture.Fixture
	pairs  map[string]struct{}
	orders []string
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{
		items: make(map[string]fixture.Fixture),
		pairs: make(map[string]struct{}),
	}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.items[fixtureID]
	if !ok {
		return fixture.Fixture{}, false, nil
	}

	return cloneFixture(f), true, nil
}

func (r *FixtureRepository) ListByLeague(_ context.Context, leagueID string) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]fixture.Fixture, 0, len(r.orders))
	for _, id := range r.orders {
		if f := r.items[id]; f.LeagueID == leagueID {
			out = append(out, cloneFixture(f))
		}
	}

	return out, nil
}

func (r *FixtureRepository) ListAwaitingConfirmation(_ context.Context, createdBefore time.Time) ([]fixture.Fixture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]fixture.Fixture, 0, len(r.orders))
	for _, id := range r.orders {
		f := r.items[id]
		if fixture.NormalizeStatus(f.Status) != fixture.StatusConfirmationRequired {
			continue
		}
		if f.CreatedAt.After(createdBefore) {
			continue
		}
		out = append(out, cloneFixture(f))
	}

	return out, nil
}

func (r *FixtureRepository) ExistsForPairing(_ context.Context, leagueID, clubA, clubB string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.pairs[fixture.PairKey(leagueID, clubA, clubB)]
	return ok, nil
}

func (r *FixtureRepository) Create(_ context.Context, f fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[f.ID]; ok {
		return fmt.Errorf("fixture %s already exists", f.ID)
	}
	key := fixture.PairKey(f.LeagueID, f.HomeClubID, f.AwayClubID)
	if _, ok := r.pairs[key]; ok {
		return fmt.Errorf("fixture pairing already exists in league %s", f.LeagueID)
	}

	r.items[f.ID] = cloneFixture(f)
	r.pairs[key] = struct{}{}
	r.orders = append(r.orders, f.ID)

	return nil
}

func (r *FixtureRepository) MarkScheduled(_ context.Context, fixtureID string, at time.Time, forced bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.items[fixtureID]
	if !ok {
		return false, fmt.Errorf("fixture %s not found", fixtureID)
	}
	if fixture.NormalizeStatus(f.Status) != fixture.StatusConfirmationRequired {
		return false, nil
	}

	at = at.UTC()
	f.Status = fixture.StatusScheduled
	f.ScheduledAt = &at
	f.ForcedSchedule = forced
	r.items[fixtureID] = f

	return true, nil
}

func cloneFixture(f fixture.Fixture) fixture.Fixture {
	copied := f
	if f.ScheduledAt != nil {
		at := *f.ScheduledAt
		copied.ScheduledAt = &at
	}
	return copied
}
