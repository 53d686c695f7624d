package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ligafut/league-core/internal/domain/roster"
)

type RosterRepository struct {
	mu     sync.RWMutex
	items  map[string]roster.Entry
	orders []string
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{items: make(map[string]roster.Entry)}
}

func (r *RosterRepository) GetByID(_ context.Context, entryID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[entryID]
	if !ok {
		return roster.Entry{}, false, nil
	}

	return e, true, nil
}

func (r *RosterRepository) GetActiveByClubAndPlayer(_ context.Context, clubID, playerID string) (roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		e := r.items[id]
		if e.ClubID == clubID && e.PlayerID == playerID && e.Active {
			return e, true, nil
		}
	}

	return roster.Entry{}, false, nil
}

func (r *RosterRepository) ListActiveByClub(_ context.Context, clubID string) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0, 8)
	for _, id := range r.orders {
		if e := r.items[id]; e.ClubID == clubID && e.Active {
			out = append(out, e)
		}
	}

	return out, nil
}

func (r *RosterRepository) CountActiveByClub(ctx context.Context, clubID string) (int, error) {
	entries, err := r.ListActiveByClub(ctx, clubID)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (r *RosterRepository) Add(_ context.Context, entry roster.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[entry.ID]; ok {
		return fmt.Errorf("roster entry %s already exists", entry.ID)
	}
	r.items[entry.ID] = entry
	r.orders = append(r.orders, entry.ID)

	return nil
}

func (r *RosterRepository) Deactivate(_ context.Context, entryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok {
		return fmt.Errorf("roster entry %s not found", entryID)
	}
	if !e.Active {
		return nil
	}
	now := time.Now().UTC()
	e.Active = false
	e.ReleasedAt = &now
	r.items[entryID] = e

	return nil
}

func (r *RosterRepository) Reassign(_ context.Context, entryID, clubID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[entryID]
	if !ok {
		return fmt.Errorf("roster entry %s not found", entryID)
	}
	if !e.Active {
		return fmt.Errorf("roster entry %s is inactive", entryID)
	}
	e.ClubID = clubID
	r.items[entryID] = e

	return nil
}
