package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/metrics"
)

// ErrNotificationDelivery is returned when a channel rejects or fails to accept a notification
var ErrNotificationDelivery = errors.New("notification delivery failed")

// Notifier defines the interface for posting change notifications
type Notifier interface {
	// Name identifies the channel in logs and metrics
	Name() string
	// Notify makes a single delivery attempt for the change
	Notify(ctx context.Context, evt *arcade.ChangeEvent) error
}

// Multi fans a change out to several channels, one attempt each
type Multi []Notifier

// Name returns the joined channel names
func (m Multi) Name() string {
	names := make([]string, 0, len(m))
	for _, n := range m {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

// Notify delivers to every channel even when an earlier one fails.
// The returned error joins the failures of all channels.
func (m Multi) Notify(ctx context.Context, evt *arcade.ChangeEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, evt); err != nil {
			metrics.NotificationsTotal.WithLabelValues(n.Name(), "error").Inc()
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(n.Name(), "ok").Inc()
	}
	return errors.Join(errs...)
}

// deliveryError wraps a channel failure as ErrNotificationDelivery
func deliveryError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotificationDelivery, fmt.Sprintf(format, args...))
}
