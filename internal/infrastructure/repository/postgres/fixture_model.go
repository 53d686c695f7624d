package postgres

import (
	"time"

	"github.com/ligafut/league-core/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID              int64      `db:"id"`
	PublicID        string     `db:"public_id"`
	LeagueID        string     `db:"league_public_id"`
	HomeClubID      string     `db:"home_club_public_id"`
	AwayClubID      string     `db:"away_club_public_id"`
	PairKey         string     `db:"pair_key"`
	Status          string     `db:"status"`
	NoSlotAvailable bool       `db:"no_slot_available"`
	ScheduledAt     *time.Time `db:"scheduled_at"`
	ForcedSchedule  bool       `db:"forced_schedule"`
	CreatedAt       time.Time  `db:"created_at"`
}

type fixtureInsertModel struct {
	PublicID        string    `db:"public_id"`
	LeagueID        string    `db:"league_public_id"`
	HomeClubID      string    `db:"home_club_public_id"`
	AwayClubID      string    `db:"away_club_public_id"`
	PairKey         string    `db:"pair_key"`
	Status          string    `db:"status"`
	NoSlotAvailable bool      `db:"no_slot_available"`
	CreatedAt       time.Time `db:"created_at"`
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:              row.PublicID,
		LeagueID:        row.LeagueID,
		HomeClubID:      row.HomeClubID,
		AwayClubID:      row.AwayClubID,
		Status:          row.Status,
		NoSlotAvailable: row.NoSlotAvailable,
		CreatedAt:       row.CreatedAt,
		ScheduledAt:     row.ScheduledAt,
		ForcedSchedule:  row.ForcedSchedule,
	}
}
