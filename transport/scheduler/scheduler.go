package scheduler

import (
	"context"
	"fmt"
	"time"

	"billiard/config"
	"billiard/infras/otel"
	"billiard/internal/domains/waitinglist/service"
	"billiard/shared/constant"
	"billiard/shared/timezone"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	jobExpireWaitingList = "expire_waiting_list"
)

// Scheduler runs the background sweepers next to the HTTP server.
type Scheduler interface {
	Start() error
	Stop() error
	ExpireWaitingList(ctx context.Context)
}

type schedulerImpl struct {
	config      *config.Config
	waitingList service.WaitingList
	otel        otel.Otel
	cron        gocron.Scheduler
}

func New(config *config.Config, waitingList service.WaitingList, otel otel.Otel) Scheduler {
	return &schedulerImpl{
		config:      config,
		waitingList: waitingList,
		otel:        otel,
	}
}

// Start registers the enabled jobs and starts ticking. It does nothing when no job is enabled.
func (s *schedulerImpl) Start() error {
	cfg := s.config.Scheduler.WaitingList
	if !cfg.Enable {
		log.Info().Msg("Waiting list expiry sweeper disabled")

		return nil
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(timezone.GetLocation()))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = cron.NewJob(
		gocron.DurationJob(time.Duration(cfg.IntervalSeconds)*time.Second),
		gocron.NewTask(s.ExpireWaitingList, context.Background()),
		gocron.WithName(jobExpireWaitingList),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register %s job: %w", jobExpireWaitingList, err)
	}

	s.cron = cron
	s.cron.Start()

	log.Info().
		Int("interval_seconds", cfg.IntervalSeconds).
		Int("expire_after_minutes", cfg.ExpireAfterMinutes).
		Msg("Waiting list expiry sweeper started")

	return nil
}

func (s *schedulerImpl) Stop() error {
	if s.cron == nil {
		return nil
	}

	if err := s.cron.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}

	log.Info().Msg("Scheduler stopped")

	return nil
}

// ExpireWaitingList expires every queued entry older than the configured age.
func (s *schedulerImpl) ExpireWaitingList(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+jobExpireWaitingList)
	defer scope.End()

	age := time.Duration(s.config.Scheduler.WaitingList.ExpireAfterMinutes) * time.Minute
	cutoff := timezone.Now().Add(-age)

	expired, err := s.waitingList.ExpireStale(ctx, cutoff)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", jobExpireWaitingList).Time("cutoff", cutoff).Msg("failed to expire waiting list entries")

		return
	}

	scope.SetAttribute("expired", expired)

	if expired > 0 {
		log.Info().Str("job", jobExpireWaitingList).Int64("expired", expired).Time("cutoff", cutoff).Msg("Expired stale waiting list entries")
	}
}
