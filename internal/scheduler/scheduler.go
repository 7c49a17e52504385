package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/event-content-pipeline/internal/config"
	"github.com/event-content-pipeline/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs Generate on a cron schedule
type Scheduler struct {
	cron     *cron.Cron
	pipeline service.PipelineService
	cfg      config.PipelineConfig
	timeout  time.Duration
	entryID  cron.EntryID
	log      zerolog.Logger
}

// New parses the configured schedule. An empty schedule yields a disabled scheduler.
func New(pipeline service.PipelineService, cfg config.PipelineConfig, timeout time.Duration, log zerolog.Logger) (*Scheduler, error) {
	log = log.With().Str("component", "scheduler").Logger()
	s := &Scheduler{
		pipeline: pipeline,
		cfg:      cfg,
		timeout:  timeout,
		log:      log,
	}
	if cfg.Schedule == "" {
		return s, nil
	}

	logger := cronLogger{log: log}
	s.cron = cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	id, err := s.cron.AddFunc(cfg.Schedule, s.run)
	if err != nil {
		return nil, fmt.Errorf("invalid PIPELINE_SCHEDULE %q: %w", cfg.Schedule, err)
	}
	s.entryID = id
	return s, nil
}

// Enabled reports whether a schedule is configured
func (s *Scheduler) Enabled() bool {
	return s.cron != nil
}

// Start begins running scheduled batches in the background
func (s *Scheduler) Start() {
	if !s.Enabled() {
		s.log.Info().Msg("No schedule configured, scheduled generation disabled")
		return
	}
	s.cron.Start()
	s.log.Info().
		Str("schedule", s.cfg.Schedule).
		Time("next_run", s.NextRun()).
		Msg("Scheduler started")
}

// Stop waits for a running batch to finish, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn().Msg("Scheduler stopped before the running batch finished")
	}
}

// NextRun returns the next activation time, zero when disabled or not started
func (s *Scheduler) NextRun() time.Time {
	if !s.Enabled() {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.RunOnce(ctx)
}

// RunOnce runs one generation batch and logs the outcome
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.log.Info().Int("batch_size", s.cfg.BatchSize).Msg("Scheduled generation starting")

	result, err := s.pipeline.Generate(ctx, s.cfg.BatchSize)
	if err != nil {
		s.log.Error().Err(err).Msg("Scheduled generation failed")
		return
	}

	s.log.Info().
		Int("processed", result.Processed).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg(result.Message)
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
