package payroll

import "context"

// Repository exposes payroll charge persistence operations.
type Repository interface {
	GetByClubAndRound(ctx context.Context, clubID string, round int) (Charge, bool, error)
	// Insert stores the charge and reports false when a charge for the same
	// (club, round) already exists.
	Insert(ctx context.Context, charge Charge) (bool, error)
	// Delete removes a charge by id. Used to back out a charge whose debit
	// never landed, so the round can be charged again.
	Delete(ctx context.Context, chargeID string) error
	ListByClub(ctx context.Context, clubID string) ([]Charge, error)
}
