package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/geo"
	"github.com/pfrederiksen/closest-arcade/internal/logger"
	"github.com/pfrederiksen/closest-arcade/internal/metrics"
	"github.com/pfrederiksen/closest-arcade/internal/notifier"
	"github.com/pfrederiksen/closest-arcade/internal/scraper"
	"github.com/pfrederiksen/closest-arcade/internal/storage"
)

// Status reports what a cycle did
type Status string

const (
	StatusInitialized         Status = "initialized"
	StatusUnchanged           Status = "unchanged"
	StatusNotified            Status = "notified"
	StatusNotificationSkipped Status = "notification_skipped"
	StatusNotificationFailed  Status = "notification_failed"
	StatusFailed              Status = "failed"
)

// Source provides the candidate listing for one cycle
type Source interface {
	FetchListing(ctx context.Context, observer arcade.Observer) (*arcade.Listing, error)
}

// Result describes one completed cycle
type Result struct {
	Status     Status
	Closest    *arcade.Closest
	Previous   *arcade.State
	Event      *arcade.ChangeEvent
	Candidates int
}

// Changed reports whether the closest arcade differs from the previous check
func (r *Result) Changed() bool {
	return r != nil && r.Event != nil
}

// Checker runs single check cycles
type Checker struct {
	source   Source
	store    storage.Store
	notifier notifier.Notifier
	observer arcade.Observer
	now      func() time.Time
}

// NewChecker creates a checker. A nil notifier disables notifications; changes are
// still detected and persisted.
func NewChecker(source Source, store storage.Store, n notifier.Notifier, observer arcade.Observer) *Checker {
	return &Checker{
		source:   source,
		store:    store,
		notifier: n,
		observer: observer,
		now:      time.Now,
	}
}

// Check runs one cycle.
//
// Errors wrap scraper.ErrSourceFetch, scraper.ErrEmptySource, storage.ErrCorruptState
// or notifier.ErrNotificationDelivery when they come from those stages; anything else
// (such as a failed state write) is returned unclassified. On a delivery failure the
// returned Result is non-nil and the new state has already been saved.
func (c *Checker) Check(ctx context.Context) (*Result, error) {
	start := c.now()
	res, err := c.check(ctx)
	metrics.CycleDurationSeconds.Observe(c.now().Sub(start).Seconds())

	status := StatusFailed
	if res != nil {
		status = res.Status
	}
	metrics.CyclesTotal.WithLabelValues(string(status)).Inc()

	return res, err
}

func (c *Checker) check(ctx context.Context) (*Result, error) {
	listing, err := c.source.FetchListing(ctx, c.observer)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}

	closest, err := geo.Nearest(c.observer, listing, c.now())
	if err != nil {
		if errors.Is(err, geo.ErrNoCandidates) {
			return nil, fmt.Errorf("%w: %w", scraper.ErrEmptySource, err)
		}
		return nil, fmt.Errorf("ranking candidates: %w", err)
	}

	logger.Debug("Nearest arcade selected", logger.Fields{
		"mode":           string(listing.Mode),
		"candidates":     len(listing.Records),
		"closest_id":     closest.Record.ID,
		"distance_miles": closest.DistanceMiles,
	})

	previous, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	outcome := arcade.Compare(previous, closest)

	if err := c.store.Save(ctx, closest.State()); err != nil {
		return nil, fmt.Errorf("saving state: %w", err)
	}

	metrics.CandidatesExtracted.Set(float64(len(listing.Records)))
	metrics.ClosestDistanceMiles.Set(closest.DistanceMiles)
	metrics.LastSuccessTimestamp.Set(float64(closest.CheckedAt.Unix()))

	res := &Result{
		Closest:    closest,
		Previous:   previous,
		Candidates: len(listing.Records),
	}

	switch outcome {
	case arcade.OutcomeInitialized:
		res.Status = StatusInitialized
		return res, nil
	case arcade.OutcomeUnchanged:
		res.Status = StatusUnchanged
		return res, nil
	}

	metrics.ChangesTotal.Inc()
	res.Event = arcade.NewChangeEvent(previous, closest, c.observer)

	if c.notifier == nil {
		res.Status = StatusNotificationSkipped
		return res, nil
	}

	if err := c.notifier.Notify(ctx, res.Event); err != nil {
		res.Status = StatusNotificationFailed
		if !errors.Is(err, notifier.ErrNotificationDelivery) {
			err = fmt.Errorf("%w: %w", notifier.ErrNotificationDelivery, err)
		}
		return res, fmt.Errorf("notifying %s: %w", c.notifier.Name(), err)
	}

	res.Status = StatusNotified
	return res, nil
}
