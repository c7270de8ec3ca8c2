package notifier

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

const tweetLimit = 280

// TwitterCredentials holds the OAuth1 keys of the posting account
type TwitterCredentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// Complete reports whether every credential is set
func (c TwitterCredentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// TwitterNotifier posts changes to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier
func NewTwitterNotifier(creds TwitterCredentials) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Name returns "twitter"
func (n *TwitterNotifier) Name() string { return "twitter" }

// Notify posts one tweet for the change
func (n *TwitterNotifier) Notify(_ context.Context, evt *arcade.ChangeEvent) error {
	if _, _, err := n.client.Statuses.Update(formatTweet(evt), nil); err != nil {
		return deliveryError("posting tweet for event %s: %v", evt.ID, err)
	}
	return nil
}

// formatTweet formats a change as a tweet
func formatTweet(evt *arcade.ChangeEvent) string {
	tweet := "🕹️ New closest arcade!\n\n"
	tweet += fmt.Sprintf("📍 %s\n", evt.Current.Name)
	if evt.Current.Address != "" {
		tweet += fmt.Sprintf("🏢 %s\n", evt.Current.Address)
	}
	tweet += fmt.Sprintf("📏 %.1f mi from %s\n", evt.CurrentDistanceMiles, evt.Observer)

	if evt.Previous != nil {
		tweet += fmt.Sprintf("\nPreviously: %s (%.1f mi)\n", evt.Previous.Name, evt.PreviousDistanceMiles)
	}

	if evt.Current.DetailsURL != "" {
		tweet += fmt.Sprintf("\n🔗 %s", evt.Current.DetailsURL)
	}

	if len(tweet) > tweetLimit {
		cut := tweetLimit - 3
		for cut > 0 && !utf8.RuneStart(tweet[cut]) {
			cut--
		}
		tweet = tweet[:cut] + "..."
	}

	return tweet
}
