package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/logger"
	"github.com/pfrederiksen/closest-arcade/internal/notifier"
	"github.com/pfrederiksen/closest-arcade/internal/scraper"
	"github.com/pfrederiksen/closest-arcade/internal/storage"
)

// Cycle runs one check
type Cycle interface {
	Check(ctx context.Context) (*Result, error)
}

// Loop repeats a Cycle on a fixed interval until its context is cancelled
type Loop struct {
	cycle      Cycle
	interval   time.Duration
	now        func() time.Time
	afterCycle func(*Result, error)
}

// NewLoop creates a loop running cycle every interval
func NewLoop(cycle Cycle, interval time.Duration) *Loop {
	return &Loop{
		cycle:    cycle,
		interval: interval,
		now:      time.Now,
	}
}

// Recoverable reports whether a cycle error leaves the loop running
func Recoverable(err error) bool {
	return errors.Is(err, scraper.ErrSourceFetch) ||
		errors.Is(err, scraper.ErrEmptySource) ||
		errors.Is(err, storage.ErrCorruptState) ||
		errors.Is(err, notifier.ErrNotificationDelivery)
}

// Run executes the first cycle immediately, then one cycle per interval.
//
// Cancelling ctx stops the loop: a sleep in progress ends at once, a cycle in
// progress is finished first. Run returns nil after a stop and the first
// unrecoverable cycle error otherwise.
func (l *Loop) Run(ctx context.Context) error {
	logger.Info("Check loop started", logger.Fields{
		"interval": l.interval.String(),
	})

	for {
		start := l.now()
		res, err := l.cycle.Check(context.WithoutCancel(ctx))
		elapsed := l.now().Sub(start)

		if l.afterCycle != nil {
			l.afterCycle(res, err)
		}

		switch {
		case err == nil:
			logCycle(res, elapsed)
		case Recoverable(err):
			logger.Error("Check cycle failed", logger.Fields{
				"duration": elapsed.String(),
			}, err)
		default:
			logger.Error("Check loop stopped on unrecoverable error", nil, err)
			return err
		}

		if ctx.Err() != nil {
			logger.Info("Check loop stopped", nil)
			return nil
		}

		wait := nextWait(l.interval, elapsed)
		logger.Debug("Sleeping until next cycle", logger.Fields{"wait": wait.String()})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("Check loop stopped", nil)
			return nil
		case <-timer.C:
		}
	}
}

// nextWait returns how long to sleep so cycles start interval apart.
// An overrunning cycle is followed immediately by the next.
func nextWait(interval, elapsed time.Duration) time.Duration {
	if wait := interval - elapsed; wait > 0 {
		return wait
	}
	return 0
}

func logCycle(res *Result, elapsed time.Duration) {
	fields := logger.Fields{
		"status":   string(res.Status),
		"duration": elapsed.String(),
	}
	if res.Closest != nil {
		fields["closest_id"] = res.Closest.Record.ID
		fields["closest_name"] = res.Closest.Record.Name
		fields["distance_miles"] = res.Closest.DistanceMiles
	}
	if res.Event != nil {
		fields["event_id"] = res.Event.ID
		if res.Event.Previous != nil {
			fields["previous_id"] = res.Event.Previous.ID
		}
	}
	logger.Info("Check cycle finished", fields)
}
