package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/internal/domain/club"
	qb "github.com/ligafut/league-core/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(qb.Eq("public_id", clubID)).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r *ClubRepository) ListByLeague(ctx context.Context, leagueID string) ([]club.Club, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs by league query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs by league: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func (r *ClubRepository) ListByOwner(ctx context.Context, ownerID string) ([]club.Club, error) {
	query, args, err := qb.Select("*").
		From("clubs").
		Where(qb.Eq("owner_user_id", ownerID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list clubs by owner query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clubs by owner: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}
	return out, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) error {
	insertModel := clubInsertModel{
		PublicID:    c.ID,
		LeagueID:    c.LeagueID,
		OwnerUserID: c.OwnerID,
		Name:        c.Name,
		Balance:     c.Balance,
		CreatedAt:   c.CreatedAt,
	}
	query, args, err := qb.InsertModel("clubs", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create club query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create club: %w", err)
	}

	return nil
}

func (r *ClubRepository) AdjustBalance(ctx context.Context, clubID string, delta int64) error {
	query, args, err := qb.Update("clubs").
		SetExpr("balance", "balance + ?", delta).
		Where(qb.Eq("public_id", clubID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build adjust club balance query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust club balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected adjust club balance: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("adjust club balance: club %s not found", clubID)
	}

	return nil
}
