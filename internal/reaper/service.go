// Package reaper periodically deletes expired link records.
package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fdlbot/fdl/internal/metrics"
)

// DefaultSchedule runs the sweep at the top of every hour.
const DefaultSchedule = "@hourly"

// Sweeper deletes records that expired before a given time.
type Sweeper interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type Service struct {
	sweeper  Sweeper
	cron     *cron.Cron
	parser   cron.Parser
	schedule string
	now      func() time.Time
	logger   *slog.Logger
	mu       sync.Mutex
	entry    cron.EntryID
	running  bool
}

func NewService(log *slog.Logger, sweeper Sweeper, schedule string) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	if schedule == "" {
		schedule = DefaultSchedule
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid reaper schedule %q: %w", schedule, err)
	}
	return &Service{
		sweeper:  sweeper,
		cron:     cron.New(cron.WithParser(parser)),
		parser:   parser,
		schedule: schedule,
		now:      time.Now,
		logger:   log.With(slog.String("service", "reaper")),
	}, nil
}

// Start registers the sweep and starts the scheduler.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.entry = entryID
	s.running = true
	s.cron.Start()
	s.logger.Info("reaper started", slog.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish or ctx to end.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.cron.Remove(s.entry)
	s.running = false
	s.mu.Unlock()

	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sweep deletes every record that is already expired.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	n, err := s.sweeper.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("sweep failed", slog.Any("error", err))
		return 0, err
	}
	metrics.RecordsReaped.Add(float64(n))
	if n > 0 {
		s.logger.Info("expired records deleted", slog.Int64("count", n))
	}
	return n, nil
}
