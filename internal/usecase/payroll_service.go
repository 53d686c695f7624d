package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/payroll"
	"github.com/ligafut/league-core/internal/domain/roster"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
)

// ChargeRoundInput deducts the wage bill of a club for one round.
type ChargeRoundInput struct {
	UserID   string
	LeagueID string
	ClubID   string
	Round    int
}

type PayrollService struct {
	leagueRepo  league.Repository
	clubRepo    club.Repository
	rosterRepo  roster.Repository
	payrollRepo payroll.Repository
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewPayrollService(
	leagueRepo league.Repository,
	clubRepo club.Repository,
	rosterRepo roster.Repository,
	payrollRepo payroll.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *PayrollService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PayrollService{
		leagueRepo:  leagueRepo,
		clubRepo:    clubRepo,
		rosterRepo:  rosterRepo,
		payrollRepo: payrollRepo,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// ChargeRound is idempotent per (club, round): the unique insert is the
// idempotency gate, so a retry after success is a no-op. A charge whose debit
// fails is backed out so the retry can collect. The balance may go negative
// on purpose, an unpaid wage bill must not stall the league.
func (s *PayrollService) ChargeRound(ctx context.Context, input ChargeRoundInput) (payroll.Charge, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PayrollService.ChargeRound")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.ClubID = strings.TrimSpace(input.ClubID)

	if input.UserID == "" || input.LeagueID == "" || input.ClubID == "" {
		return payroll.Charge{}, fmt.Errorf("%w: user, league and club ids are required", ErrInvalidInput)
	}
	if input.Round <= 0 {
		return payroll.Charge{}, fmt.Errorf("%w: round must be > 0", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return payroll.Charge{}, fmt.Errorf("get league by id: %w", err)
	} else if !exists {
		return payroll.Charge{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	c, exists, err := s.clubRepo.GetByID(ctx, input.ClubID)
	if err != nil {
		return payroll.Charge{}, fmt.Errorf("get club by id: %w", err)
	}
	if !exists {
		return payroll.Charge{}, fmt.Errorf("%w: club=%s", ErrNotFound, input.ClubID)
	}
	if !c.OwnedBy(input.UserID, input.LeagueID) {
		return payroll.Charge{}, fmt.Errorf("%w: club does not belong to the user in this league", ErrUnauthorized)
	}

	entries, err := s.rosterRepo.ListActiveByClub(ctx, c.ID)
	if err != nil {
		return payroll.Charge{}, fmt.Errorf("list active roster entries: %w", err)
	}
	var amount int64
	for _, entry := range entries {
		amount += entry.Wage
	}

	chargeID, err := s.idGen.NewID()
	if err != nil {
		return payroll.Charge{}, fmt.Errorf("generate charge id: %w", err)
	}
	charge := payroll.Charge{
		ID:        chargeID,
		ClubID:    c.ID,
		Round:     input.Round,
		Amount:    amount,
		ChargedAt: s.now().UTC(),
	}

	inserted, err := s.payrollRepo.Insert(ctx, charge)
	if err != nil {
		return payroll.Charge{}, fmt.Errorf("insert payroll charge: %w", err)
	}
	if !inserted {
		return payroll.Charge{}, fmt.Errorf("%w: club=%s round=%d", payroll.ErrAlreadyCharged, c.ID, input.Round)
	}

	if err := s.clubRepo.AdjustBalance(ctx, c.ID, -amount); err != nil {
		// Back the charge out, otherwise the gate would report
		// ErrAlreadyCharged on retry with the wages never collected.
		if delErr := s.payrollRepo.Delete(ctx, charge.ID); delErr != nil {
			s.logger.ErrorContext(ctx, "back out payroll charge failed",
				"charge_id", charge.ID,
				"club_id", c.ID,
				"round", input.Round,
				"error", delErr,
			)
		}
		return payroll.Charge{}, fmt.Errorf("debit club payroll: %w", err)
	}

	s.logger.InfoContext(ctx, "payroll charged",
		"club_id", c.ID,
		"round", input.Round,
		"amount", amount,
		"players", len(entries),
	)

	return charge, nil
}
