package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/monitor"
)

func changedResult() *monitor.Result {
	current := &arcade.Record{ID: "3307", Name: "Pinewood Social", Address: "33 Peabody St, Nashville, TN", DetailsURL: "https://locator.test/shop.php?sid=3307"}
	previous := &arcade.Record{ID: "1042", Name: "Game Terminal", Address: "201 Metroplex Dr, Nashville, TN"}
	return &monitor.Result{
		Status: monitor.StatusNotified,
		Closest: &arcade.Closest{
			Record:        current,
			DistanceMiles: 0.84,
			CheckedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Event: &arcade.ChangeEvent{
			ID:                    "evt-1",
			Previous:              previous,
			PreviousDistanceMiles: 7.3,
			Current:               current,
			CurrentDistanceMiles:  0.84,
		},
		Candidates: 3,
	}
}

func TestWriteOutput_Text(t *testing.T) {
	tests := []struct {
		name        string
		result      *OutputResult
		verbose     bool
		contains    []string
		notContains []string
	}{
		{
			name:    "changed",
			result:  NewCheckOutput(changedResult(), "Nashville, TN"),
			verbose: false,
			contains: []string{
				"CHANGED: closest arcade to Nashville, TN",
				"Pinewood Social (0.8 mi)",
				"Previously:",
				"Game Terminal (7.3 mi)",
				"Status: notified (checked 2026-03-01T12:00:00Z)",
			},
			notContains: []string{"ID: 3307", "Event: evt-1"},
		},
		{
			name:     "verbose",
			result:   NewCheckOutput(changedResult(), "Nashville, TN"),
			verbose:  true,
			contains: []string{"ID: 3307", "Details: https://locator.test/shop.php?sid=3307", "Event: evt-1", "Candidates: 3"},
		},
		{
			name:     "nothing recorded",
			result:   NewStateOutput(nil, "Nashville, TN"),
			contains: []string{"No closest arcade recorded yet."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, tt.result, FormatText, tt.verbose); err != nil {
				t.Fatalf("WriteOutput() error: %v", err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q\n%s", s, out)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q\n%s", s, out)
				}
			}
		})
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, NewCheckOutput(changedResult(), "Nashville, TN"), FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["status"] != "notified" {
		t.Errorf("status = %v, want notified", got["status"])
	}
	if got["event_id"] != "evt-1" {
		t.Errorf("event_id = %v, want evt-1", got["event_id"])
	}
	closest, _ := got["closest"].(map[string]interface{})
	if closest["id"] != "3307" {
		t.Errorf("closest.id = %v, want 3307", closest["id"])
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{}, OutputFormat("xml"), false); err == nil {
		t.Error("WriteOutput() should reject unknown formats")
	}
}

func TestNewStateOutput(t *testing.T) {
	state := &arcade.State{
		CheckedAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Closest:       &arcade.Record{ID: "3307", Name: "Pinewood Social", Address: "33 Peabody St"},
		DistanceMiles: 0.84,
	}

	out := NewStateOutput(state, "Nashville, TN")
	if out.Status != "recorded" || out.Closest.ID != "3307" || out.DistanceMiles != 0.84 {
		t.Errorf("NewStateOutput() = %+v", out)
	}
}
