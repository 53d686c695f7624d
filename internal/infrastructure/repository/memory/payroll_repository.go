package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ligafut/league-core/internal/domain/payroll"
)

type PayrollRepository struct {
	mu     sync.Mutex
	items  map[string]payroll.Charge
	orders []string
}

func NewPayrollRepository() *PayrollRepository {
	return &PayrollRepository{items: make(map[string]payroll.Charge)}
}

func (r *PayrollRepository) GetByClubAndRound(_ context.Context, clubID string, round int) (payroll.Charge, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[chargeKey(clubID, round)]
	if !ok {
		return payroll.Charge{}, false, nil
	}

	return c, true, nil
}

func (r *PayrollRepository) Insert(_ context.Context, charge payroll.Charge) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := chargeKey(charge.ClubID, charge.Round)
	if _, ok := r.items[key]; ok {
		return false, nil
	}
	r.items[key] = charge
	r.orders = append(r.orders, key)

	return true, nil
}

func (r *PayrollRepository) Delete(_ context.Context, chargeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, c := range r.items {
		if c.ID != chargeID {
			continue
		}
		delete(r.items, key)
		for i, k := range r.orders {
			if k == key {
				r.orders = append(r.orders[:i], r.orders[i+1:]...)
				break
			}
		}
		return nil
	}

	return nil
}

func (r *PayrollRepository) ListByClub(_ context.Context, clubID string) ([]payroll.Charge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]payroll.Charge, 0, 4)
	for _, key := range r.orders {
		if c := r.items[key]; c.ClubID == clubID {
			out = append(out, c)
		}
	}

	return out, nil
}

func chargeKey(clubID string, round int) string {
	return fmt.Sprintf("%s::%d", clubID, round)
}
