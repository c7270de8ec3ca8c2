package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/monitor"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt             time.Time      `json:"checked_at"`
	Observer              string         `json:"observer"`
	Status                string         `json:"status"`
	Closest               *arcade.Record `json:"closest"`
	DistanceMiles         float64        `json:"distance_miles"`
	Previous              *arcade.Record `json:"previous,omitempty"`
	PreviousDistanceMiles float64        `json:"previous_distance_miles,omitempty"`
	EventID               string         `json:"event_id,omitempty"`
	Candidates            int            `json:"candidates,omitempty"`
}

// NewCheckOutput describes the result of one check cycle
func NewCheckOutput(res *monitor.Result, observer string) *OutputResult {
	out := &OutputResult{
		Observer:   observer,
		Status:     string(res.Status),
		Candidates: res.Candidates,
	}
	if res.Closest != nil {
		out.CheckedAt = res.Closest.CheckedAt.UTC()
		out.Closest = res.Closest.Record
		out.DistanceMiles = res.Closest.DistanceMiles
	}
	if res.Event != nil {
		out.EventID = res.Event.ID
		out.Previous = res.Event.Previous
		out.PreviousDistanceMiles = res.Event.PreviousDistanceMiles
	}
	return out
}

// NewStateOutput describes the persisted state; a nil state means nothing was recorded yet
func NewStateOutput(state *arcade.State, observer string) *OutputResult {
	if state == nil {
		return &OutputResult{Observer: observer, Status: "empty"}
	}
	return &OutputResult{
		CheckedAt:     state.CheckedAt,
		Observer:      observer,
		Status:        "recorded",
		Closest:       state.Closest,
		DistanceMiles: state.DistanceMiles,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Closest == nil {
		fmt.Fprintln(w, "No closest arcade recorded yet.")
		return nil
	}

	switch result.Status {
	case string(monitor.StatusNotified), string(monitor.StatusNotificationSkipped), string(monitor.StatusNotificationFailed):
		fmt.Fprintf(w, "CHANGED: closest arcade to %s\n", result.Observer)
	default:
		fmt.Fprintf(w, "Closest arcade to %s\n", result.Observer)
	}

	writeRecord(w, result.Closest, result.DistanceMiles, verbose)

	if result.Previous != nil {
		fmt.Fprintln(w, "\nPreviously:")
		writeRecord(w, result.Previous, result.PreviousDistanceMiles, verbose)
	}

	fmt.Fprintf(w, "\nStatus: %s", result.Status)
	if !result.CheckedAt.IsZero() {
		fmt.Fprintf(w, " (checked %s)", result.CheckedAt.Format(time.RFC3339))
	}
	fmt.Fprintln(w)

	if verbose {
		if result.EventID != "" {
			fmt.Fprintf(w, "Event: %s\n", result.EventID)
		}
		if result.Candidates > 0 {
			fmt.Fprintf(w, "Candidates: %d\n", result.Candidates)
		}
	}

	return nil
}

func writeRecord(w io.Writer, rec *arcade.Record, miles float64, verbose bool) {
	fmt.Fprintf(w, "  %s (%.1f mi)\n", rec.Name, miles)
	fmt.Fprintf(w, "  %s\n", rec.Address)
	if verbose {
		fmt.Fprintf(w, "       ID: %s\n", rec.ID)
		if rec.DetailsURL != "" {
			fmt.Fprintf(w, "       Details: %s\n", rec.DetailsURL)
		}
	}
}
