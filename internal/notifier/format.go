package notifier

import (
	"fmt"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// FormatSummary renders a one-line description of a change
func FormatSummary(evt *arcade.ChangeEvent) string {
	current := fmt.Sprintf("%s (%.1f mi)", evt.Current.Name, evt.CurrentDistanceMiles)
	if evt.Previous == nil {
		return fmt.Sprintf("Closest arcade to %s is now %s", evt.Observer, current)
	}
	previous := fmt.Sprintf("%s (%.1f mi)", evt.Previous.Name, evt.PreviousDistanceMiles)
	return fmt.Sprintf("Closest arcade to %s changed: %s -> %s", evt.Observer, previous, current)
}
