package server

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gelirgider/internal/logger"
	"gelirgider/internal/services"
)

// Scheduler periodically materializes the recurring items due in the
// current month. Generation skips existing occurrences, so overlapping runs
// are harmless.
type Scheduler struct {
	recurring services.RecurringServicer
	interval  time.Duration
	now       func() time.Time
	log       *zap.SugaredLogger
}

// NewScheduler creates a scheduler that runs every interval.
func NewScheduler(recurring services.RecurringServicer, interval time.Duration) *Scheduler {
	return &Scheduler{
		recurring: recurring,
		interval:  interval,
		now:       time.Now,
		log:       logger.Named("scheduler"),
	}
}

// RunOnce generates the current month and returns the number of new
// transactions.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	now := s.now()
	generated, err := s.recurring.GenerateRecurring(ctx, now.Year(), now.Month())
	if err != nil {
		s.log.Errorw("recurring generation failed", "error", err)
		return 0
	}
	if len(generated) > 0 {
		s.log.Infow("generated recurring transactions",
			"count", len(generated),
			"period", now.Format("2006-01"),
		)
	}
	return len(generated)
}

// Run generates once at startup and then on every tick until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Infow("recurring scheduler started", "interval", s.interval.String())
	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("recurring scheduler stopped")
			return nil
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
