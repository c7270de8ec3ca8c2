// Package notifier delivers closest-arcade change events to outbound channels.
//
// The primary channel is a JSON webhook. Telegram and Twitter channels can be enabled
// alongside it, and a dry-run channel prints messages instead of sending them. Each
// channel gets exactly one delivery attempt per change; failures are reported as
// ErrNotificationDelivery and never retried.
package notifier
