package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// DryRunNotifier prints what would be sent without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{out: out}
}

// Name returns "dry-run"
func (n *DryRunNotifier) Name() string { return "dry-run" }

// Notify prints the message and the webhook payload
func (n *DryRunNotifier) Notify(_ context.Context, evt *arcade.ChangeEvent) error {
	payload, err := json.MarshalIndent(NewPayload(evt), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	fmt.Fprintf(n.out, "--- Notification %s ---\n", evt.ID)
	fmt.Fprintln(n.out, FormatSummary(evt))
	fmt.Fprintf(n.out, "%s\n\n", payload)
	return nil
}
