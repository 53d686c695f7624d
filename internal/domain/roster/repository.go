package roster

import "context"

// Repository exposes roster entry persistence operations.
type Repository interface {
	GetByID(ctx context.Context, entryID string) (Entry, bool, error)
	GetActiveByClubAndPlayer(ctx context.Context, clubID, playerID string) (Entry, bool, error)
	ListActiveByClub(ctx context.Context, clubID string) ([]Entry, error)
	CountActiveByClub(ctx context.Context, clubID string) (int, error)
	Add(ctx context.Context, entry Entry) error
	// Deactivate flips the active flag and stamps the release time. It is a
	// no-op when the entry is already inactive.
	Deactivate(ctx context.Context, entryID string) error
	// Reassign moves an active entry to another club, used by swaps.
	Reassign(ctx context.Context, entryID, clubID string) error
}
