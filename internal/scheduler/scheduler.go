package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata" // America/Caracas must resolve in minimal images

	"github.com/SscSPs/bcv_rates/internal/core/domain"
	portssvc "github.com/SscSPs/bcv_rates/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

const (
	// DefaultSchedule fires at 16:05 and 19:05, after the BCV publishes.
	DefaultSchedule = "5 16,19 * * *"
	DefaultTimezone = "America/Caracas"
)

// Scheduler triggers refresh cycles on a wall-clock schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	refresh  portssvc.RefreshSvc
	logger   *slog.Logger
	entry    cron.EntryID
}

// New creates a Scheduler for a standard five-field cron spec evaluated in timezone.
func New(refresh portssvc.RefreshSvc, schedule, timezone string, logger *slog.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if timezone == "" {
		timezone = DefaultTimezone
	}
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{logger}))),
		schedule: schedule,
		refresh:  refresh,
		logger:   logger,
	}
	s.entry, err = s.cron.AddFunc(schedule, s.tick)
	if err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	s.refresh.Run(context.Background(), domain.TriggerCron)
}

// Start runs the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("BCV refresh scheduler started",
		slog.String("schedule", s.schedule),
		slog.String("timezone", s.cron.Location().String()),
		slog.Time("next_run", s.Next()),
	)
}

// Stop stops the schedule and waits for a running cycle, or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Next is the next fire time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// NextAfter computes the fire time following t without starting the scheduler.
func (s *Scheduler) NextAfter(t time.Time) time.Time {
	return s.cron.Entry(s.entry).Schedule.Next(t.In(s.cron.Location()))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}
