package notifier

import (
	"context"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/telegram"
)

// TelegramNotifier sends changes to a Telegram chat
type TelegramNotifier struct {
	client *telegram.Client
}

// NewTelegramNotifier creates a notifier for the bot and chat
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{client: client}, nil
}

// Name returns "telegram"
func (n *TelegramNotifier) Name() string { return "telegram" }

// Notify sends one message for the change
func (n *TelegramNotifier) Notify(ctx context.Context, evt *arcade.ChangeEvent) error {
	if err := n.client.SendMessage(ctx, telegram.FormatChange(evt)); err != nil {
		return deliveryError("%v", err)
	}
	return nil
}
