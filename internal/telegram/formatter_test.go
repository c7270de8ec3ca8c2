package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

func TestFormatChange(t *testing.T) {
	evt := &arcade.ChangeEvent{
		ID:        "evt-1",
		Observer:  "Nashville, TN",
		CheckedAt: time.Date(2026, 10, 19, 15, 4, 0, 0, time.UTC),
		Previous:  &arcade.Record{ID: "1042", Name: "Round1"},
		Current: &arcade.Record{
			ID:         "2210",
			Name:       "Dave & Buster's <Opry>",
			Address:    "540 Opry Mills Dr",
			DetailsURL: "https://locator.test/shop.php?sid=2210&x=1",
		},
		PreviousDistanceMiles: 5.74,
		CurrentDistanceMiles:  2.26,
	}

	msg := FormatChange(evt)

	for _, want := range []string{
		"<b>New closest arcade!</b>",
		"Dave &amp; Buster&#39;s &lt;Opry&gt;",
		"540 Opry Mills Dr",
		"2.3 mi from Nashville, TN",
		"Previously: Round1 (5.7 mi)",
		`href="https://locator.test/shop.php?sid=2210&amp;x=1"`,
		"Oct 19, 2026 15:04 UTC",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("FormatChange() missing %q in:\n%s", want, msg)
		}
	}
}

func TestFormatChange_NoPrevious(t *testing.T) {
	evt := &arcade.ChangeEvent{
		Observer: "Home",
		Current:  &arcade.Record{ID: "1", Name: "Arcade"},
	}

	msg := FormatChange(evt)
	if strings.Contains(msg, "Previously") {
		t.Errorf("FormatChange() should not mention a previous arcade:\n%s", msg)
	}
	if strings.Contains(msg, "href") {
		t.Errorf("FormatChange() should not link without a details URL:\n%s", msg)
	}
}
