package cli

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/closest-arcade/internal/config"
	"github.com/pfrederiksen/closest-arcade/internal/logger"
	"github.com/pfrederiksen/closest-arcade/internal/monitor"
	"github.com/pfrederiksen/closest-arcade/internal/notifier"
	"github.com/pfrederiksen/closest-arcade/internal/scraper"
	"github.com/pfrederiksen/closest-arcade/internal/storage"
)

// app holds the collaborators shared by the run and check commands
type app struct {
	store      storage.Store
	notifier   notifier.Notifier
	checker    *monitor.Checker
	closeStore func() error
}

func newApp(cfg *config.Config, opts *options) (*app, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	n, err := buildNotifier(cfg, opts)
	if err != nil {
		closeStore()
		return nil, err
	}

	src := scraper.New(scraper.Options{
		URL:              cfg.SourceURL,
		Region:           cfg.SourceRegion,
		Radius:           cfg.SourceRadius,
		DetailsURLFormat: cfg.DetailsURLFormat,
		Timeout:          cfg.HTTPTimeout,
	})

	return &app{
		store:      store,
		notifier:   n,
		checker:    monitor.NewChecker(src, store, n, cfg.Observer),
		closeStore: closeStore,
	}, nil
}

// Close releases the state backend
func (a *app) Close() error {
	return a.closeStore()
}

func (a *app) notifierName() string {
	if a.notifier == nil {
		return "disabled"
	}
	return a.notifier.Name()
}

// openStore picks the Redis backend when configured, the state file otherwise
func openStore(cfg *config.Config) (storage.Store, func() error, error) {
	if cfg.Redis != nil {
		store := storage.NewRedisStore(storage.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.Redis.Key,
		})
		ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using Redis state backend", logger.Fields{"addr": cfg.Redis.Addr, "key": cfg.Redis.Key})
		return store, store.Close, nil
	}

	store, err := storage.NewFileStore(cfg.StateFile)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}
	logger.Debug("Using state file", logger.Fields{"path": store.Path()})
	return store, func() error { return nil }, nil
}

// buildNotifier assembles the configured channels. It returns nil when none is
// configured, which disables notifications. --dry-run replaces every channel.
func buildNotifier(cfg *config.Config, opts *options) (notifier.Notifier, error) {
	if opts.dryRun {
		return notifier.Multi{notifier.NewDryRunNotifier(opts.out)}, nil
	}

	var channels notifier.Multi
	if cfg.NotifyURL != "" {
		channels = append(channels, notifier.NewWebhookNotifier(cfg.NotifyURL))
	}
	if cfg.Telegram != nil {
		tg, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			return nil, fmt.Errorf("creating telegram notifier: %w", err)
		}
		channels = append(channels, tg)
	}
	if cfg.Twitter != nil {
		tw, err := notifier.NewTwitterNotifier(*cfg.Twitter)
		if err != nil {
			return nil, fmt.Errorf("creating twitter notifier: %w", err)
		}
		channels = append(channels, tw)
	}

	if len(channels) == 0 {
		return nil, nil
	}
	return channels, nil
}
