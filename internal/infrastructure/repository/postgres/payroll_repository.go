package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/internal/domain/payroll"
	qb "github.com/ligafut/league-core/internal/platform/querybuilder"
)

type PayrollRepository struct {
	db *sqlx.DB
}

func NewPayrollRepository(db *sqlx.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

func (r *PayrollRepository) GetByClubAndRound(ctx context.Context, clubID string, round int) (payroll.Charge, bool, error) {
	query, args, err := qb.Select("*").
		From("payroll_charges").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("round", round),
		).
		ToSQL()
	if err != nil {
		return payroll.Charge{}, false, fmt.Errorf("build get payroll charge query: %w", err)
	}

	var row payrollChargeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return payroll.Charge{}, false, nil
		}
		return payroll.Charge{}, false, fmt.Errorf("get payroll charge: %w", err)
	}

	return payrollChargeFromRow(row), true, nil
}

// Insert relies on the unique (club, round) index as the idempotency gate:
// a duplicate charge hits DO NOTHING and reports inserted=false.
func (r *PayrollRepository) Insert(ctx context.Context, charge payroll.Charge) (bool, error) {
	insertModel := payrollChargeInsertModel{
		PublicID:  charge.ID,
		ClubID:    charge.ClubID,
		Round:     charge.Round,
		Amount:    charge.Amount,
		ChargedAt: charge.ChargedAt.UTC(),
	}
	query, args, err := qb.InsertModel("payroll_charges", insertModel, "ON CONFLICT (club_public_id, round) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert payroll charge query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert payroll charge: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected insert payroll charge: %w", err)
	}

	return affected > 0, nil
}

func (r *PayrollRepository) Delete(ctx context.Context, chargeID string) error {
	query, args, err := qb.DeleteFrom("payroll_charges").
		Where(qb.Eq("public_id", chargeID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete payroll charge query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete payroll charge: %w", err)
	}

	return nil
}

func (r *PayrollRepository) ListByClub(ctx context.Context, clubID string) ([]payroll.Charge, error) {
	query, args, err := qb.Select("*").
		From("payroll_charges").
		Where(qb.Eq("club_public_id", clubID)).
		OrderBy("round").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list payroll charges query: %w", err)
	}

	var rows []payrollChargeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list payroll charges: %w", err)
	}

	out := make([]payroll.Charge, 0, len(rows))
	for _, row := range rows {
		out = append(out, payrollChargeFromRow(row))
	}
	return out, nil
}
