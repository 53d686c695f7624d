package memory

import (
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/player"
)

// Seed identifiers referenced by tests and dev wiring.
const (
	LeagueIDSerieFantasia = "br-serie-fantasia"
	ConfederationIDSul    = "conf-sul-americana"

	ClubIDTupi    = "clube-tupi"
	ClubIDAzulao  = "clube-azulao"
	ClubIDColibri = "clube-colibri"

	OwnerIDTupi    = "user-tupi"
	OwnerIDAzulao  = "user-azulao"
	OwnerIDColibri = "user-colibri"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:                   LeagueIDSerieFantasia,
			Name:                 "Série Fantasia",
			ConfederationID:      ConfederationIDSul,
			ConfirmDeadlineHours: 48,
			BidIncrements:        []int64{100, 500, 1000},
			CreatedAt:            time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedClubs() []club.Club {
	createdAt := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	return []club.Club{
		{ID: ClubIDTupi, LeagueID: LeagueIDSerieFantasia, OwnerID: OwnerIDTupi, Name: "Tupi FC", Balance: 100_000, CreatedAt: createdAt},
		{ID: ClubIDAzulao, LeagueID: LeagueIDSerieFantasia, OwnerID: OwnerIDAzulao, Name: "Azulão EC", Balance: 100_000, CreatedAt: createdAt},
		{ID: ClubIDColibri, LeagueID: LeagueIDSerieFantasia, OwnerID: OwnerIDColibri, Name: "Colibri SC", Balance: 100_000, CreatedAt: createdAt},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pad-gk-01", Name: "Mauro Ponte", Position: player.PositionGoalkeeper, Value: 5_000, Wage: 250, ReleaseClause: 9_000},
		{ID: "pad-def-01", Name: "Caio Brasa", Position: player.PositionDefender, Value: 4_200, Wage: 220, ReleaseClause: 8_000},
		{ID: "pad-def-02", Name: "Rui Taveira", Position: player.PositionDefender, Value: 3_800, Wage: 200, ReleaseClause: 7_200},
		{ID: "pad-mid-01", Name: "Léo Quintana", Position: player.PositionMidfielder, Value: 6_500, Wage: 320, ReleaseClause: 12_000},
		{ID: "pad-mid-02", Name: "Dico Farias", Position: player.PositionMidfielder, Value: 5_900, Wage: 300, ReleaseClause: 11_000},
		{ID: "pad-fwd-01", Name: "Nando Estrela", Position: player.PositionForward, Value: 8_000, Wage: 400, ReleaseClause: 15_000},
		{ID: "pad-fwd-02", Name: "Tico Lumem", Position: player.PositionForward, Value: 7_400, Wage: 380, ReleaseClause: 14_000},
	}
}
