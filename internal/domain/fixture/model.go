package fixture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusConfirmationRequired = "CONFIRMATION_REQUIRED"
	StatusScheduled            = "SCHEDULED"
	StatusPlayed               = "PLAYED"
)

// ErrInvalidTransition rejects moves against the one-way state machine
// CONFIRMATION_REQUIRED -> SCHEDULED -> PLAYED.
var ErrInvalidTransition = errors.New("fixture state transition is not allowed")

// Fixture is one match between two clubs of the same league.
type Fixture struct {
	ID              string
	LeagueID        string
	HomeClubID      string
	AwayClubID      string
	Status          string
	NoSlotAvailable bool
	CreatedAt       time.Time
	ScheduledAt     *time.Time
	ForcedSchedule  bool
}

func (f Fixture) Validate() error {
	if f.ID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if f.LeagueID == "" {
		return fmt.Errorf("fixture league id is required")
	}
	if f.HomeClubID == "" || f.AwayClubID == "" {
		return fmt.Errorf("fixture needs both clubs")
	}
	if f.HomeClubID == f.AwayClubID {
		return fmt.Errorf("fixture clubs must differ")
	}

	return nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusConfirmationRequired
	}
	return status
}

// CanTransition enforces the forward-only state machine.
func CanTransition(from, to string) bool {
	switch NormalizeStatus(from) {
	case StatusConfirmationRequired:
		return NormalizeStatus(to) == StatusScheduled
	case StatusScheduled:
		return NormalizeStatus(to) == StatusPlayed
	default:
		return false
	}
}

// PairKey identifies the unordered club pairing inside a league, used to
// keep fixture generation idempotent.
func PairKey(leagueID, clubA, clubB string) string {
	if clubB < clubA {
		clubA, clubB = clubB, clubA
	}
	return leagueID + "::" + clubA + "::" + clubB
}
