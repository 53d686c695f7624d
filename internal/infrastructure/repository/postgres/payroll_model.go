package postgres

import (
	"time"

	"github.com/ligafut/league-core/internal/domain/payroll"
)

type payrollChargeTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	ClubID    string    `db:"club_public_id"`
	Round     int       `db:"round"`
	Amount    int64     `db:"amount"`
	ChargedAt time.Time `db:"charged_at"`
}

type payrollChargeInsertModel struct {
	PublicID  string    `db:"public_id"`
	ClubID    string    `db:"club_public_id"`
	Round     int       `db:"round"`
	Amount    int64     `db:"amount"`
	ChargedAt time.Time `db:"charged_at"`
}

func payrollChargeFromRow(row payrollChargeTableModel) payroll.Charge {
	return payroll.Charge{
		ID:        row.PublicID,
		ClubID:    row.ClubID,
		Round:     row.Round,
		Amount:    row.Amount,
		ChargedAt: row.ChargedAt,
	}
}
