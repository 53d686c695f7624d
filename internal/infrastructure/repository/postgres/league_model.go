package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/ligafut/league-core/internal/domain/league"
)

type leagueTableModel struct {
	ID                   int64         `db:"id"`
	PublicID             string        `db:"public_id"`
	Name                 string        `db:"name"`
	ConfederationID      string        `db:"confederation_id"`
	ConfirmDeadlineHours int           `db:"confirm_deadline_hours"`
	BidIncrements        pq.Int64Array `db:"bid_increments"`
	MarketClosedFrom     *time.Time    `db:"market_closed_from"`
	MarketClosedUntil    *time.Time    `db:"market_closed_until"`
	CreatedAt            time.Time     `db:"created_at"`
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:                   row.PublicID,
		Name:                 row.Name,
		ConfederationID:      row.ConfederationID,
		ConfirmDeadlineHours: row.ConfirmDeadlineHours,
		BidIncrements:        []int64(row.BidIncrements),
		MarketClosedFrom:     row.MarketClosedFrom,
		MarketClosedUntil:    row.MarketClosedUntil,
		CreatedAt:            row.CreatedAt,
	}
}
