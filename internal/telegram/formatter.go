package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// FormatChange formats a closest-arcade change as a Telegram HTML message
func FormatChange(evt *arcade.ChangeEvent) string {
	var msg strings.Builder

	msg.WriteString("🕹️ <b>New closest arcade!</b>\n\n")

	msg.WriteString(fmt.Sprintf("📍 <b>%s</b>\n", html.EscapeString(evt.Current.Name)))
	if evt.Current.Address != "" {
		msg.WriteString(fmt.Sprintf("🏢 %s\n", html.EscapeString(evt.Current.Address)))
	}
	msg.WriteString(fmt.Sprintf("📏 %.1f mi from %s\n", evt.CurrentDistanceMiles, html.EscapeString(evt.Observer)))

	if evt.Previous != nil {
		msg.WriteString(fmt.Sprintf("\n<i>Previously: %s (%.1f mi)</i>\n",
			html.EscapeString(evt.Previous.Name), evt.PreviousDistanceMiles))
	}

	if evt.Current.DetailsURL != "" {
		msg.WriteString(fmt.Sprintf("\n🔗 <a href=\"%s\">Details</a>\n", html.EscapeString(evt.Current.DetailsURL)))
	}

	msg.WriteString(fmt.Sprintf("\n<i>Checked %s</i>", evt.CheckedAt.UTC().Format("Jan 2, 2006 15:04 MST")))

	return msg.String()
}
