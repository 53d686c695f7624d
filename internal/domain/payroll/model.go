package payroll

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyCharged reports a repeated charge for the same (club, round).
// The first successful charge wins; retries are no-ops.
var ErrAlreadyCharged = errors.New("payroll already charged for this round")

// Charge records one wage deduction for a club in a round. The (club, round)
// pair is the idempotency key.
type Charge struct {
	ID        string
	ClubID    string
	Round     int
	Amount    int64
	ChargedAt time.Time
}

func (c Charge) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("payroll charge id is required")
	}
	if c.ClubID == "" {
		return fmt.Errorf("payroll charge club id is required")
	}
	if c.Round <= 0 {
		return fmt.Errorf("payroll charge round must be > 0")
	}
	if c.Amount < 0 {
		return fmt.Errorf("payroll charge amount cannot be negative")
	}

	return nil
}
