package club

import "context"

// Repository exposes club persistence operations.
type Repository interface {
	GetByID(ctx context.Context, clubID string) (Club, bool, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Club, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Club, error)
	Create(ctx context.Context, c Club) error
	// AdjustBalance applies a signed delta to the club balance. Callers
	// decide whether a negative resulting balance is acceptable.
	AdjustBalance(ctx context.Context, clubID string, delta int64) error
}
