package club

import (
	"errors"
	"fmt"
	"time"
)

// ErrInsufficientFunds rejects debits that would overdraw a club outside of
// payroll. Payroll alone may push a balance negative.
var ErrInsufficientFunds = errors.New("club balance is insufficient")

// Club is owned by exactly one user inside exactly one league. Balance is
// held in cents.
type Club struct {
	ID        string
	LeagueID  string
	OwnerID   string
	Name      string
	Balance   int64
	CreatedAt time.Time
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.LeagueID == "" {
		return fmt.Errorf("club league id is required")
	}
	if c.OwnerID == "" {
		return fmt.Errorf("club owner id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// OwnedBy reports whether the club belongs to the user within the league.
func (c Club) OwnedBy(userID, leagueID string) bool {
	return c.OwnerID == userID && c.LeagueID == leagueID
}
