package fixture

import (
	"context"
	"time"
)

// Repository exposes fixture persistence operations.
type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Fixture, error)
	// ListAwaitingConfirmation returns fixtures still in
	// CONFIRMATION_REQUIRED created at or before the cutoff.
	ListAwaitingConfirmation(ctx context.Context, createdBefore time.Time) ([]Fixture, error)
	ExistsForPairing(ctx context.Context, leagueID, clubA, clubB string) (bool, error)
	Create(ctx context.Context, f Fixture) error
	// MarkScheduled moves the fixture out of CONFIRMATION_REQUIRED with a
	// conditional update. Returns false when the fixture was not in that
	// state, so a forced fixture can never fall back.
	MarkScheduled(ctx context.Context, fixtureID string, at time.Time, forced bool) (bool, error)
}
