package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ligafut/league-core/internal/domain/user"
	"github.com/ligafut/league-core/internal/platform/logging"
	"github.com/ligafut/league-core/internal/usecase"
)

type Handler struct {
	leagueService   *usecase.LeagueService
	clubService     *usecase.ClubService
	auctionService  *usecase.AuctionService
	transferService *usecase.TransferService
	payrollService  *usecase.PayrollService
	fixtureService  *usecase.FixtureService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	clubService *usecase.ClubService,
	auctionService *usecase.AuctionService,
	transferService *usecase.TransferService,
	payrollService *usecase.PayrollService,
	fixtureService *usecase.FixtureService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:   leagueService,
		clubService:     clubService,
		auctionService:  auctionService,
		transferService: transferService,
		payrollService:  payrollService,
		fixtureService:  fixtureService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok || principal.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return principal, nil
}
