package league

import (
	"fmt"
	"time"
)

// DefaultConfirmDeadlineHours applies when a league has no explicit
// confirmation deadline configured.
const DefaultConfirmDeadlineHours = 48

// League is one competition instance. Clubs and fixtures belong to it.
type League struct {
	ID                   string
	Name                 string
	ConfederationID      string
	ConfirmDeadlineHours int
	BidIncrements        []int64
	MarketClosedFrom     *time.Time
	MarketClosedUntil    *time.Time
	CreatedAt            time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.ConfirmDeadlineHours < 0 {
		return fmt.Errorf("league confirm deadline hours cannot be negative")
	}
	for _, inc := range l.BidIncrements {
		if inc <= 0 {
			return fmt.Errorf("league bid increment must be > 0, got %d", inc)
		}
	}

	return nil
}

// ConfirmDeadline returns the moment a fixture created at createdAt becomes
// eligible for forced scheduling. Comparisons are done in UTC.
func (l League) ConfirmDeadline(createdAt time.Time) time.Time {
	hours := l.ConfirmDeadlineHours
	if hours <= 0 {
		hours = DefaultConfirmDeadlineHours
	}
	return createdAt.UTC().Add(time.Duration(hours) * time.Hour)
}

// MarketClosedAt reports whether the closed-market window covers the given
// instant. A league without a window never closes its market.
func (l League) MarketClosedAt(at time.Time) bool {
	if l.MarketClosedFrom == nil || l.MarketClosedUntil == nil {
		return false
	}
	at = at.UTC()
	return !at.Before(l.MarketClosedFrom.UTC()) && at.Before(l.MarketClosedUntil.UTC())
}

// AllowsIncrement reports whether the increment belongs to the league's
// allowed bid increment set.
func (l League) AllowsIncrement(increment int64) bool {
	for _, allowed := range l.BidIncrements {
		if allowed == increment {
			return true
		}
	}
	return false
}
