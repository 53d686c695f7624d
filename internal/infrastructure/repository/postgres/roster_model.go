package postgres

import (
	"time"

	"github.com/ligafut/league-core/internal/domain/roster"
)

type rosterEntryTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	ClubID        string     `db:"club_public_id"`
	PlayerID      string     `db:"player_public_id"`
	Active        bool       `db:"active"`
	Value         int64      `db:"value"`
	Wage          int64      `db:"wage"`
	ReleaseClause int64      `db:"release_clause"`
	AcquiredAt    time.Time  `db:"acquired_at"`
	ReleasedAt    *time.Time `db:"released_at"`
}

type rosterEntryInsertModel struct {
	PublicID      string    `db:"public_id"`
	ClubID        string    `db:"club_public_id"`
	PlayerID      string    `db:"player_public_id"`
	Active        bool      `db:"active"`
	Value         int64     `db:"value"`
	Wage          int64     `db:"wage"`
	ReleaseClause int64     `db:"release_clause"`
	AcquiredAt    time.Time `db:"acquired_at"`
}

func rosterEntryFromRow(row rosterEntryTableModel) roster.Entry {
	return roster.Entry{
		ID:            row.PublicID,
		ClubID:        row.ClubID,
		PlayerID:      row.PlayerID,
		Active:        row.Active,
		Value:         row.Value,
		Wage:          row.Wage,
		ReleaseClause: row.ReleaseClause,
		AcquiredAt:    row.AcquiredAt,
		ReleasedAt:    row.ReleasedAt,
	}
}
