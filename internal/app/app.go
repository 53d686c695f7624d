package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/ligafut/league-core/external/jobqueue"
	"github.com/ligafut/league-core/internal/config"
	"github.com/ligafut/league-core/internal/domain/auction"
	"github.com/ligafut/league-core/internal/domain/club"
	"github.com/ligafut/league-core/internal/domain/fixture"
	"github.com/ligafut/league-core/internal/domain/league"
	"github.com/ligafut/league-core/internal/domain/payroll"
	"github.com/ligafut/league-core/internal/domain/player"
	"github.com/ligafut/league-core/internal/domain/roster"
	"github.com/ligafut/league-core/internal/infrastructure/account"
	cacherepo "github.com/ligafut/league-core/internal/infrastructure/repository/cache"
	"github.com/ligafut/league-core/internal/infrastructure/repository/memory"
	"github.com/ligafut/league-core/internal/infrastructure/repository/postgres"
	"github.com/ligafut/league-core/internal/interfaces/httpapi"
	basecache "github.com/ligafut/league-core/internal/platform/cache"
	idgen "github.com/ligafut/league-core/internal/platform/id"
	"github.com/ligafut/league-core/internal/platform/logging"
	"github.com/ligafut/league-core/internal/usecase"
)

// App bundles the HTTP server, the background scheduler and the resources
// they own.
type App struct {
	Server    *http.Server
	Scheduler *Scheduler

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	leagues  league.Repository
	clubs    club.Repository
	players  player.Repository
	rosters  roster.Repository
	auctions auction.Repository
	fixtures fixture.Repository
	payrolls payroll.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, db, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
	}

	idGen := idgen.NewRandomGenerator()

	auctionSvc := usecase.NewAuctionService(
		repos.leagues, repos.clubs, repos.players, repos.rosters, repos.auctions,
		idGen, cfg.AntiSnipeWindow, cfg.SweepWorkers, logger,
	)
	transferSvc := usecase.NewTransferService(
		repos.leagues, repos.clubs, repos.players, repos.rosters,
		idGen, logger,
	)
	payrollSvc := usecase.NewPayrollService(
		repos.leagues, repos.clubs, repos.rosters, repos.payrolls,
		idGen, logger,
	)
	fixtureSvc := usecase.NewFixtureService(
		repos.leagues, repos.clubs, repos.fixtures,
		idGen, cfg.SweepWorkers, logger,
	)
	leagueSvc := usecase.NewLeagueService(
		repos.leagues, repos.clubs, repos.rosters, repos.auctions, repos.fixtures, repos.payrolls,
		logger,
	)
	clubSvc := usecase.NewClubService(repos.leagues, repos.clubs, fixtureSvc, idGen, logger)
	rosterGuard := usecase.NewRosterGuard(repos.leagues, repos.clubs, repos.rosters, logger)

	verifier := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		cfg.AccountCacheTTL,
		logger,
	)

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQueuePublisher(jobqueue.QueuePublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
		}, logger)
	}

	var scheduler *Scheduler
	if cfg.SchedulerEnabled {
		scheduler, err = NewScheduler(cfg, auctionSvc, fixtureSvc, queue, logger)
		if err != nil {
			return nil, err
		}
	}

	handler := httpapi.NewHandler(leagueSvc, clubSvc, auctionSvc, transferSvc, payrollSvc, fixtureSvc, logger)
	router := httpapi.NewRouter(handler, verifier, rosterGuard, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Scheduler: scheduler,
		db:        db,
		logger:    logger,
	}, nil
}

func buildRepositories(cfg config.Config) (repositories, *sqlx.DB, error) {
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			leagues:  postgres.NewLeagueRepository(db),
			clubs:    postgres.NewClubRepository(db),
			players:  postgres.NewPlayerRepository(db),
			rosters:  postgres.NewRosterRepository(db),
			auctions: postgres.NewAuctionRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			payrolls: postgres.NewPayrollRepository(db),
		}, db, nil
	}

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	return repositories{
		leagues:  leagues,
		clubs:    memory.NewClubRepository(memory.SeedClubs()),
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		rosters:  memory.NewRosterRepository(),
		auctions: memory.NewAuctionRepository(leagues),
		fixtures: memory.NewFixtureRepository(),
		payrolls: memory.NewPayrollRepository(),
	}, nil, nil
}

// Close stops the scheduler and releases owned resources. The HTTP server is
// shut down by the caller before Close.
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			a.logger.ErrorContext(ctx, "scheduler shutdown failed", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
	}
	return nil
}
