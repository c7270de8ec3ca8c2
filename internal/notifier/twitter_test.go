package notifier

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

func testEvent(previous bool) *arcade.ChangeEvent {
	evt := &arcade.ChangeEvent{
		ID:        "5b0c8d1e-2f7a-4c61-9d3e-7a1b2c3d4e5f",
		Observer:  "Nashville, TN",
		CheckedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		SourceURL: "https://locator.test/arcades.php",
		Current: &arcade.Record{
			ID:         "3307",
			Name:       "Pinewood Social",
			Address:    "33 Peabody St, Nashville, TN",
			DetailsURL: "https://locator.test/shop.php?sid=3307",
		},
		CurrentDistanceMiles: 0.8,
	}
	if previous {
		evt.Previous = &arcade.Record{
			ID:         "1042",
			Name:       "Game Terminal",
			Address:    "201 Metroplex Dr, Nashville, TN",
			DetailsURL: "https://locator.test/shop.php?sid=1042",
		}
		evt.PreviousDistanceMiles = 7.3
	}
	return evt
}

func TestFormatTweet(t *testing.T) {
	tests := []struct {
		name        string
		event       *arcade.ChangeEvent
		contains    []string
		notContains []string
	}{
		{
			name:  "change with previous arcade",
			event: testEvent(true),
			contains: []string{
				"Pinewood Social",
				"33 Peabody St, Nashville, TN",
				"0.8 mi from Nashville, TN",
				"Previously: Game Terminal (7.3 mi)",
				"https://locator.test/shop.php?sid=3307",
				"🕹️",
			},
		},
		{
			name:        "first arcade",
			event:       testEvent(false),
			contains:    []string{"Pinewood Social"},
			notContains: []string{"Previously"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tweet := formatTweet(tt.event)

			if len(tweet) > tweetLimit {
				t.Errorf("formatTweet() length = %d, want <= %d", len(tweet), tweetLimit)
			}
			for _, s := range tt.contains {
				if !strings.Contains(tweet, s) {
					t.Errorf("formatTweet() missing %q\n%s", s, tweet)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(tweet, s) {
					t.Errorf("formatTweet() should not contain %q\n%s", s, tweet)
				}
			}
		})
	}
}

func TestFormatTweet_Truncation(t *testing.T) {
	evt := testEvent(true)
	evt.Current.Name = strings.Repeat("Ünïcödé Arcade ", 30)

	tweet := formatTweet(evt)

	if len(tweet) > tweetLimit {
		t.Errorf("formatTweet() length = %d, want <= %d", len(tweet), tweetLimit)
	}
	if !strings.HasSuffix(tweet, "...") {
		t.Errorf("truncated tweet should end with ellipsis: %q", tweet)
	}
	if !utf8.ValidString(tweet) {
		t.Error("truncated tweet is not valid UTF-8")
	}
}

func TestTwitterCredentials_Complete(t *testing.T) {
	full := TwitterCredentials{APIKey: "k", APISecret: "s", AccessToken: "t", AccessSecret: "ts"}
	if !full.Complete() {
		t.Error("Complete() = false for full credentials")
	}

	partial := full
	partial.AccessSecret = ""
	if partial.Complete() {
		t.Error("Complete() = true with a missing secret")
	}
	if _, err := NewTwitterNotifier(partial); err == nil {
		t.Error("NewTwitterNotifier() should reject partial credentials")
	}
}
