package maintenance

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SweepFunc removes stale in-memory state and reports how many entries went.
type SweepFunc func() int

// Scheduler runs housekeeping sweeps on cron specs.
type Scheduler struct {
	c      *cron.Cron
	logger zerolog.Logger
}

func NewScheduler(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		c: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With().Str("component", "maintenance").Logger(),
	}
}

// Add registers a sweep. spec uses the six-field cron format or a
// descriptor such as "@every 1m". after, if set, receives the count.
func (s *Scheduler) Add(name, spec string, sweep SweepFunc, after func(removed int)) error {
	_, err := s.c.AddFunc(spec, func() {
		removed := sweep()
		if after != nil {
			after(removed)
		}
		if removed > 0 {
			s.logger.Debug().Str("job", name).Int("removed", removed).Msg("sweep finished")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	return nil
}

// Len is the number of registered sweeps.
func (s *Scheduler) Len() int {
	return len(s.c.Entries())
}

func (s *Scheduler) Start() {
	s.c.Start()
	s.logger.Info().Int("jobs", s.Len()).Msg("maintenance scheduler started")
}

// Stop waits for running sweeps or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
