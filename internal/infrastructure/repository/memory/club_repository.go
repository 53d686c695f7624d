package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ligafut/league-core/internal/domain/club"
)

type ClubRepository struct {
	mu     sync.RWMutex
	items  map[string]club.Club
	orders []string
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	items := make(map[string]club.Club, len(clubs))
	orders := make([]string, 0, len(clubs))
	for _, c := range clubs {
		items[c.ID] = c
		orders = append(orders, c.ID)
	}

	return &ClubRepository{
		items:  items,
		orders: orders,
	}
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[clubID]
	if !ok {
		return club.Club{}, false, nil
	}

	return c, true, nil
}

func (r *ClubRepository) ListByLeague(_ context.Context, leagueID string) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, len(r.orders))
	for _, id := range r.orders {
		if c := r.items[id]; c.LeagueID == leagueID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *ClubRepository) ListByOwner(_ context.Context, ownerID string) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, 2)
	for _, id := range r.orders {
		if c := r.items[id]; c.OwnerID == ownerID {
			out = append(out, c)
		}
	}

	return out, nil
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; ok {
		return fmt.Errorf("club %s already exists", c.ID)
	}
	r.items[c.ID] = c
	r.orders = append(r.orders, c.ID)

	return nil
}

func (r *ClubRepository) AdjustBalance(_ context.Context, clubID string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[clubID]
	if !ok {
		return fmt.Errorf("club %s not found", clubID)
	}
	c.Balance += delta
	r.items[clubID] = c

	return nil
}
