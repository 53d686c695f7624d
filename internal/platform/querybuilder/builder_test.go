package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	cutoff := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	query, args, err := Select("public_id", "current_bid").
		From("auctions").
		Where(Lte("expires_at", cutoff), IsNull("finalized_at")).
		OrderBy("expires_at").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, current_bid FROM auctions WHERE expires_at <= $1 AND finalized_at IS NULL ORDER BY expires_at LIMIT 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != cutoff {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilderWithConflictSuffix(t *testing.T) {
	query, args, err := InsertInto("payroll_charges").
		Columns("public_id", "club_public_id", "round").
		Values("ch1", "c1", 3).
		Suffix("ON CONFLICT (club_public_id, round) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO payroll_charges (public_id, club_public_id, round) VALUES ($1, $2, $3) ON CONFLICT (club_public_id, round) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "ch1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilderWithExpr(t *testing.T) {
	query, args, err := Update("auctions").
		Set("current_bid", int64(1500)).
		SetExpr("expires_at", "GREATEST(expires_at, ?)", "2025-08-01").
		Where(Eq("public_id", "a1"), IsNull("finalized_at"), Eq("current_bid", int64(1000))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE auctions SET current_bid = $1, expires_at = GREATEST(expires_at, $2) WHERE public_id = $3 AND finalized_at IS NULL AND current_bid = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "2025-08-01" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("payroll_charges").
		Where(Eq("public_id", "ch1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM payroll_charges WHERE public_id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "ch1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("payroll_charges").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}
}

func TestInsertModelUsesDBTags(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		skipped  string
		Ignored  string `db:"-"`
	}
	_ = row{skipped: ""}

	query, args, err := InsertModel("clubs", row{PublicID: "c1", Name: "Tupi FC"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}

	wantQuery := "INSERT INTO clubs (public_id, name) VALUES ($1, $2)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "Tupi FC" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
