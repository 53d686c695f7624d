package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/domain/user"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	"github.com/ligafut/league-core/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
}

func (s stubVerifier) VerifyAccessToken(_ context.Context, _ string) (user.Principal, error) {
	return s.principal, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l1/clubs", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	handler := RequireAuth(stubVerifier{}, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l1/clubs", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "user-1"}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatalf("expected principal in context")
		}
		seen = principal
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(verifier, next)

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l1/clubs", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen.UserID != "user-1" {
		t.Fatalf("unexpected principal user id: %q", seen.UserID)
	}
}

func TestRequireAuth_VerifierFailure(t *testing.T) {
	verifier := stubVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}
	handler := RequireAuth(verifier, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/l1/clubs", nil)
	req.Header.Set("Authorization", "Bearer expired")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	t.Run("unconfigured token rejects everything", func(t *testing.T) {
		handler := RequireInternalJobToken("", okHandler())

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalize-auctions", nil)
		req.Header.Set("X-Internal-Job-Token", "anything")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected status 503, got %d", rec.Code)
		}
	})

	t.Run("wrong token", func(t *testing.T) {
		handler := RequireInternalJobToken("secret", okHandler())

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalize-auctions", nil)
		req.Header.Set("X-Internal-Job-Token", "not-secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})

	t.Run("valid token passes", func(t *testing.T) {
		handler := RequireInternalJobToken("secret", okHandler())

		req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalize-auctions", nil)
		req.Header.Set("X-Internal-Job-Token", "secret")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	})
}

func newRosterGuardFixture(t *testing.T, marketClosed bool, activeEntries int) *usecase.RosterGuard {
	t.Helper()

	lg := league.League{
		ID:                   "league-1",
		Name:                 "Test League",
		ConfederationID:      "conf-1",
		ConfirmDeadlineHours: 48,
		BidIncrements:        []int64{1_000},
		CreatedAt:            time.Now().UTC(),
	}
	if marketClosed {
		from := time.Now().UTC().Add(-time.Hour)
		until := time.Now().UTC().Add(time.Hour)
		lg.MarketClosedFrom = &from
		lg.MarketClosedUntil = &until
	}

	leagues := memory.NewLeagueRepository([]league.League{lg})
	clubs := memory.NewClubRepository([]club.Club{{
		ID:        "club-1",
		LeagueID:  "league-1",
		OwnerID:   "owner-1",
		Name:      "Test Club",
		Balance:   100_000,
		CreatedAt: time.Now().UTC(),
	}})
	rosters := memory.NewRosterRepository()
	for i := 0; i < activeEntries; i++ {
		entry := roster.Entry{
			ID:         fmt.Sprintf("entry-%d", i),
			ClubID:     "club-1",
			PlayerID:   fmt.Sprintf("player-%d", i),
			Active:     true,
			AcquiredAt: time.Now().UTC(),
		}
		if err := rosters.Add(context.Background(), entry); err != nil {
			t.Fatalf("seed roster entry: %v", err)
		}
	}

	return usecase.NewRosterGuard(leagues, clubs, rosters, nil)
}

func TestRequireWithinRosterLimit_BlocksOverLimitClub(t *testing.T) {
	guard := newRosterGuardFixture(t, true, roster.ActiveLimit+1)
	handler := RequireWithinRosterLimit(guard, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/league-1/clubs/club-1/transfers/buy", nil)
	req.SetPathValue("leagueID", "league-1")
	req.SetPathValue("clubID", "club-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestRequireWithinRosterLimit_AllowsClubAtLimit(t *testing.T) {
	guard := newRosterGuardFixture(t, true, roster.ActiveLimit)
	handler := RequireWithinRosterLimit(guard, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/league-1/clubs/club-1/transfers/buy", nil)
	req.SetPathValue("leagueID", "league-1")
	req.SetPathValue("clubID", "club-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireWithinRosterLimit_OpenMarketNeverBlocks(t *testing.T) {
	guard := newRosterGuardFixture(t, false, roster.ActiveLimit+5)
	handler := RequireWithinRosterLimit(guard, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/leagues/league-1/clubs/club-1/transfers/buy", nil)
	req.SetPathValue("leagueID", "league-1")
	req.SetPathValue("clubID", "club-1")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRequireWithinRosterLimit_FallsBackToPrincipalClubs(t *testing.T) {
	guard := newRosterGuardFixture(t, true, roster.ActiveLimit+1)
	handler := RequireWithinRosterLimit(guard, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/transfers/buy", nil)
	ctx := withPrincipal(req.Context(), user.Principal{UserID: "owner-1"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}
