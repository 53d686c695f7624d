package postgres

import (
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
)

type clubTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	LeagueID    string    `db:"league_public_id"`
	OwnerUserID string    `db:"owner_user_id"`
	Name        string    `db:"name"`
	Balance     int64     `db:"balance"`
	CreatedAt   time.Time `db:"created_at"`
}

type clubInsertModel struct {
	PublicID    string    `db:"public_id"`
	LeagueID    string    `db:"league_public_id"`
	OwnerUserID string    `db:"owner_user_id"`
	Name        string    `db:"name"`
	Balance     int64     `db:"balance"`
	CreatedAt   time.Time `db:"created_at"`
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		OwnerID:   row.OwnerUserID,
		Name:      row.Name,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}
