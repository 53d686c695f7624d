package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/ligafut/league-core/internal/domain/user"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/usecase"
)

func newTestRouter(t *testing.T, verifier TokenVerifier) http.Handler {
	t.Helper()

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	clubs := memory.NewClubRepository(memory.SeedClubs())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	rosters := memory.NewRosterRepository()
	auctions := memory.NewAuctionRepository(leagues)
	fixtures := memory.NewFixtureRepository()
	payrolls := memory.NewPayrollRepository()

	idGen := idgen.NewRandomGenerator()

	auctionSvc := usecase.NewAuctionService(leagues, clubs, players, rosters, auctions, idGen, 2*time.Minute, 2, nil)
	transferSvc := usecase.NewTransferService(leagues, clubs, players, rosters, idGen, nil)
	payrollSvc := usecase.NewPayrollService(leagues, clubs, rosters, payrolls, idGen, nil)
	fixtureSvc := usecase.NewFixtureService(leagues, clubs, fixtures, idGen, 2, nil)
	leagueSvc := usecase.NewLeagueService(leagues, clubs, rosters, auctions, fixtures, payrolls, nil)
	clubSvc := usecase.NewClubService(leagues, clubs, fixtureSvc, idGen, nil)
	guard := usecase.NewRosterGuard(leagues, clubs, rosters, nil)

	handler := NewHandler(leagueSvc, clubSvc, auctionSvc, transferSvc, payrollSvc, fixtureSvc, nil)
	return NewRouter(handler, verifier, guard, nil, []string{"*"}, "job-secret")
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_ListLeagues(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) == 0 {
		t.Fatalf("expected seeded leagues in data, got %v", body["data"])
	}
}

func TestRouter_CreateClubRequiresAuth(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/leagues/"+memory.LeagueIDSerieFantasia+"/clubs",
		strings.NewReader(`{"name":"Novo Clube"}`),
	)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_CreateClub(t *testing.T) {
	verifier := stubVerifier{principal: user.Principal{UserID: "owner-new"}}
	router := newTestRouter(t, verifier)

	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/leagues/"+memory.LeagueIDSerieFantasia+"/clubs",
		strings.NewReader(`{"name":"Novo Clube"}`),
	)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// A second club for the same owner in the same league is rejected.
	req = httptest.NewRequest(
		http.MethodPost,
		"/v1/leagues/"+memory.LeagueIDSerieFantasia+"/clubs",
		strings.NewReader(`{"name":"Segundo Clube"}`),
	)
	req.Header.Set("Authorization", "Bearer token")
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409 for second club, got %d", rec.Code)
	}
}

func TestRouter_InternalJobTokenGate(t *testing.T) {
	router := newTestRouter(t, stubVerifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalize-auctions", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/finalize-auctions", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}
