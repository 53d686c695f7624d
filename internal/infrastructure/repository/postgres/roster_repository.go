package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/internal/domain/roster"
	qb "github.com/ligafut/league-core/internal/platform/querybuilder"
)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByID(ctx context.Context, entryID string) (roster.Entry, bool, error) {
	query, args, err := qb.Select("*").
		From("roster_entries").
		Where(qb.Eq("public_id", entryID)).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get roster entry query: %w", err)
	}

	var row rosterEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("get roster entry: %w", err)
	}

	return rosterEntryFromRow(row), true, nil
}

func (r *RosterRepository) GetActiveByClubAndPlayer(ctx context.Context, clubID, playerID string) (roster.Entry, bool, error) {
	query, args, err := qb.Select("*").
		From("roster_entries").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("player_public_id", playerID),
			qb.Eq("active", true),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return roster.Entry{}, false, fmt.Errorf("build get active roster entry query: %w", err)
	}

	var row rosterEntryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Entry{}, false, nil
		}
		return roster.Entry{}, false, fmt.Errorf("get active roster entry: %w", err)
	}

	return rosterEntryFromRow(row), true, nil
}

func (r *RosterRepository) ListActiveByClub(ctx context.Context, clubID string) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").
		From("roster_entries").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("active", true),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active roster entries query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list active roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, rosterEntryFromRow(row))
	}
	return out, nil
}

func (r *RosterRepository) CountActiveByClub(ctx context.Context, clubID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("roster_entries").
		Where(
			qb.Eq("club_public_id", clubID),
			qb.Eq("active", true),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count active roster entries query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count active roster entries: %w", err)
	}

	return count, nil
}

func (r *RosterRepository) Add(ctx context.Context, entry roster.Entry) error {
	insertModel := rosterEntryInsertModel{
		PublicID:      entry.ID,
		ClubID:        entry.ClubID,
		PlayerID:      entry.PlayerID,
		Active:        entry.Active,
		Value:         entry.Value,
		Wage:          entry.Wage,
		ReleaseClause: entry.ReleaseClause,
		AcquiredAt:    entry.AcquiredAt,
	}
	query, args, err := qb.InsertModel("roster_entries", insertModel, "")
	if err != nil {
		return fmt.Errorf("build add roster entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add roster entry: %w", err)
	}

	return nil
}

// Deactivate releases an entry. Entries are never deleted, history queries
// rely on released rows staying around.
func (r *RosterRepository) Deactivate(ctx context.Context, entryID string) error {
	query, args, err := qb.Update("roster_entries").
		Set("active", false).
		SetExpr("released_at", "NOW()").
		Where(
			qb.Eq("public_id", entryID),
			qb.Eq("active", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate roster entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate roster entry: %w", err)
	}

	return nil
}

func (r *RosterRepository) Reassign(ctx context.Context, entryID, clubID string) error {
	query, args, err := qb.Update("roster_entries").
		Set("club_public_id", clubID).
		Where(
			qb.Eq("public_id", entryID),
			qb.Eq("active", true),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reassign roster entry query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("reassign roster entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected reassign roster entry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reassign roster entry: entry %s not found or inactive", entryID)
	}

	return nil
}
