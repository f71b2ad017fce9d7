package application

import (
	"context"
	"log"
	"time"
)

// Scheduler triggers a detection run for the previous day once per day at a
// fixed wall-clock time.
type Scheduler struct {
	runner  *Runner
	dailyAt string
	logger  *log.Logger
}

// NewScheduler constructs a Scheduler.
func NewScheduler(runner *Runner, dailyAt string, logger *log.Logger) *Scheduler {
	return &Scheduler{
		runner:  runner,
		dailyAt: dailyAt,
		logger:  logger,
	}
}

// Start begins the scheduler loop. It blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	if s == nil || s.runner == nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !s.shouldRun(now.UTC()) {
				continue
			}
			day := Yesterday(now.UTC())
			if _, err := s.runner.ProcessDay(ctx, day); err != nil && s.logger != nil {
				s.logger.Printf("scheduled run error: date=%s err=%v", day.Format("2006-01-02"), err)
			}
		}
	}
}

func (s *Scheduler) shouldRun(now time.Time) bool {
	hour, minute, err := parseDailyAt(s.dailyAt)
	if err != nil {
		return false
	}
	return now.Hour() == hour && now.Minute() == minute
}

func parseDailyAt(value string) (int, int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
