// Package telegram provides Telegram Bot API integration for closest-arcade notifications.
//
// The package sends HTML-formatted change messages through the sendMessage method of the
// Bot API. Authentication requires a bot token (from @BotFather) and chat ID.
package telegram
