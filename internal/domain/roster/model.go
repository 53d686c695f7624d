package roster

import (
	"errors"
	"fmt"
	"time"

	"github.com/ligafut/league-core/internal/domain/player"
)

// ActiveLimit is the closed-market roster size ceiling. A club at exactly
// the limit is fine; enforcement starts one entry above it.
const ActiveLimit = 18

// ErrOverLimit blocks mutating club actions while the market is closed and
// the active roster exceeds ActiveLimit.
var ErrOverLimit = errors.New("active roster exceeds the closed-market limit")

// ErrAlreadyOnRoster rejects acquiring a player the club already fields.
var ErrAlreadyOnRoster = errors.New("player is already on the club roster")

// Entry links a club to a catalog player. Entries are deactivated on sale,
// never deleted, so transfer history stays reconstructible.
type Entry struct {
	ID            string
	ClubID        string
	PlayerID      string
	Active        bool
	Value         int64
	Wage          int64
	ReleaseClause int64
	AcquiredAt    time.Time
	ReleasedAt    *time.Time
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("roster entry id is required")
	}
	if e.ClubID == "" {
		return fmt.Errorf("roster entry club id is required")
	}
	if e.PlayerID == "" {
		return fmt.Errorf("roster entry player id is required")
	}
	if e.Value < 0 || e.Wage < 0 || e.ReleaseClause < 0 {
		return fmt.Errorf("roster entry financials cannot be negative")
	}

	return nil
}

// EntryFromPlayer builds a fresh active entry carrying the catalog player's
// financial attributes.
func EntryFromPlayer(id, clubID string, p player.Player, acquiredAt time.Time) Entry {
	return Entry{
		ID:            id,
		ClubID:        clubID,
		PlayerID:      p.ID,
		Active:        true,
		Value:         p.Value,
		Wage:          p.Wage,
		ReleaseClause: p.ReleaseClause,
		AcquiredAt:    acquiredAt.UTC(),
	}
}
