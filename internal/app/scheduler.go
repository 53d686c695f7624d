package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ligafut/league-core/internal/config"
	"github.com/ligafut/league-core/internal/platform/logging"
	"github.com/ligafut/league-core/internal/usecase"
)

// Scheduler drives the periodic sweeps: auction finalization and forced
// fixture scheduling. With QStash enabled the ticks publish queue callbacks
// so delivery retries are handled by the queue; otherwise the sweeps run
// in-process.
type Scheduler struct {
	sched          gocron.Scheduler
	auctionService *usecase.AuctionService
	fixtureService *usecase.FixtureService
	queue          usecase.JobQueue
	useQueue       bool
	logger         *logging.Logger
}

func NewScheduler(
	cfg config.Config,
	auctionService *usecase.AuctionService,
	fixtureService *usecase.FixtureService,
	queue usecase.JobQueue,
	logger *logging.Logger,
) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if queue == nil {
		queue = usecase.NewNoopJobQueue()
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{
		sched:          sched,
		auctionService: auctionService,
		fixtureService: fixtureService,
		queue:          queue,
		useQueue:       cfg.QStashEnabled,
		logger:         logger,
	}

	// Singleton mode: a slow sweep must never overlap with the next tick.
	if _, err := sched.NewJob(
		gocron.DurationJob(cfg.AuctionFinalizeInterval),
		gocron.NewTask(s.runFinalizeAuctions, cfg.AuctionFinalizeInterval),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return nil, fmt.Errorf("register finalize-auctions job: %w", err)
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(cfg.FixtureForceInterval),
		gocron.NewTask(s.runForceSchedule, cfg.FixtureForceInterval),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return nil, fmt.Errorf("register force-schedule job: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("scheduler started", "use_queue", s.useQueue)
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) runFinalizeAuctions(interval time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), interval)
	defer cancel()

	if s.useQueue {
		if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/finalize-auctions", nil, 0, tickDeduplicationID("finalize-auctions", interval)); err != nil {
			s.logger.ErrorContext(ctx, "enqueue finalize-auctions failed", "error", err)
		}
		return
	}

	result, err := s.auctionService.FinalizeExpired(ctx, "")
	if err != nil {
		s.logger.ErrorContext(ctx, "finalize-auctions sweep failed", "error", err)
		return
	}
	if result.Scanned > 0 {
		s.logger.InfoContext(ctx, "finalize-auctions sweep done",
			"scanned", result.Scanned,
			"transferred", result.Transferred,
			"void", result.Void,
			"failed", result.Failed,
		)
	}
}

func (s *Scheduler) runForceSchedule(interval time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), interval)
	defer cancel()

	if s.useQueue {
		if err := s.queue.Enqueue(ctx, "/v1/internal/jobs/force-schedule", nil, 0, tickDeduplicationID("force-schedule", interval)); err != nil {
			s.logger.ErrorContext(ctx, "enqueue force-schedule failed", "error", err)
		}
		return
	}

	result, err := s.fixtureService.ForceOverdue(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "force-schedule sweep failed", "error", err)
		return
	}
	if result.Scanned > 0 {
		s.logger.InfoContext(ctx, "force-schedule sweep done",
			"scanned", result.Scanned,
			"forced", result.Forced,
			"pending", result.Pending,
			"failed", result.Failed,
		)
	}
}

// tickDeduplicationID keys one tick window so a restarted publisher cannot
// double-enqueue the same sweep.
func tickDeduplicationID(job string, interval time.Duration) string {
	bucket := time.Now().UTC().Truncate(interval).Unix()
	return fmt.Sprintf("%s-%d", job, bucket)
}
