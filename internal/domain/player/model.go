package player

import "fmt"

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// Player is one entry of the standard player catalog shared by every league.
type Player struct {
	ID            string
	Name          string
	Position      Position
	Value         int64
	Wage          int64
	ReleaseClause int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Value < 0 || p.Wage < 0 || p.ReleaseClause < 0 {
		return fmt.Errorf("player financials cannot be negative")
	}

	return nil
}
