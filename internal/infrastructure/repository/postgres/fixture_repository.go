package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/internal/domain/fixture"
	qb "github.com/ligafut/league-core/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(qb.Eq("public_id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture by id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture by id: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) ListByLeague(ctx context.Context, leagueID string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures by league query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures by league: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) ListAwaitingConfirmation(ctx context.Context, createdBefore time.Time) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").
		From("fixtures").
		Where(
			qb.Eq("status", fixture.StatusConfirmationRequired),
			qb.Lte("created_at", createdBefore.UTC()),
		).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list awaiting fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list awaiting fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) ExistsForPairing(ctx context.Context, leagueID, clubA, clubB string) (bool, error) {
	query, args, err := qb.Select("1").
		From("fixtures").
		Where(qb.Eq("pair_key", fixture.PairKey(leagueID, clubA, clubB))).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build fixture pairing exists query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("fixture pairing exists: %w", err)
	}

	return true, nil
}

func (r *FixtureRepository) Create(ctx context.Context, f fixture.Fixture) error {
	insertModel := fixtureInsertModel{
		PublicID:        f.ID,
		LeagueID:        f.LeagueID,
		HomeClubID:      f.HomeClubID,
		AwayClubID:      f.AwayClubID,
		PairKey:         fixture.PairKey(f.LeagueID, f.HomeClubID, f.AwayClubID),
		Status:          fixture.NormalizeStatus(f.Status),
		NoSlotAvailable: f.NoSlotAvailable,
		CreatedAt:       f.CreatedAt.UTC(),
	}
	query, args, err := qb.InsertModel("fixtures", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create fixture query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}

	return nil
}

// MarkScheduled advances a fixture out of CONFIRMATION_REQUIRED. The status
// guard in the WHERE clause makes the transition one-way: a fixture already
// scheduled or played updates zero rows.
func (r *FixtureRepository) MarkScheduled(ctx context.Context, fixtureID string, at time.Time, forced bool) (bool, error) {
	query, args, err := qb.Update("fixtures").
		Set("status", fixture.StatusScheduled).
		Set("scheduled_at", at.UTC()).
		Set("forced_schedule", forced).
		Where(
			qb.Eq("public_id", fixtureID),
			qb.Eq("status", fixture.StatusConfirmationRequired),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build mark fixture scheduled query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("mark fixture scheduled: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected mark fixture scheduled: %w", err)
	}

	return affected > 0, nil
}
