package postgres

import "github.com/ligafut/league-core/internal/domain/player"

type playerTableModel struct {
	ID            int64  `db:"id"`
	PublicID      string `db:"public_id"`
	Name          string `db:"name"`
	Position      string `db:"position"`
	Value         int64  `db:"value"`
	Wage          int64  `db:"wage"`
	ReleaseClause int64  `db:"release_clause"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.PublicID,
		Name:          row.Name,
		Position:      player.Position(row.Position),
		Value:         row.Value,
		Wage:          row.Wage,
		ReleaseClause: row.ReleaseClause,
	}
}
