// Package config builds the closest-arcade runtime configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
	"github.com/pfrederiksen/closest-arcade/internal/notifier"
	"github.com/pfrederiksen/closest-arcade/internal/storage"
)

// ErrConfiguration marks an invalid or incomplete configuration. It is fatal at startup.
var ErrConfiguration = errors.New("invalid configuration")

const (
	DefaultObserverLat   = 36.1627
	DefaultObserverLon   = -86.7816
	DefaultObserverLabel = "Nashville, TN"

	DefaultCheckInterval = 60 * time.Minute
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "json"
)

// LookupFunc resolves one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Redis holds the optional Redis state backend settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Telegram holds the optional Telegram channel settings.
type Telegram struct {
	BotToken string
	ChatID   string
}

// Config is the immutable runtime configuration, built once at startup.
type Config struct {
	SourceURL        string
	SourceRegion     string
	SourceRadius     string
	DetailsURLFormat string

	Observer arcade.Observer

	CheckInterval time.Duration
	HTTPTimeout   time.Duration

	StateFile string
	Redis     *Redis

	NotifyURL string
	Telegram  *Telegram
	Twitter   *notifier.TwitterCredentials

	StatusAddr string

	LogLevel  string
	LogFormat string
}

// Load reads envFile when it exists (an empty name means ".env") and then builds
// the configuration from the process environment. Variables already set in the
// environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfiguration, envFile, err)
	}
	return LoadFromLookup(os.LookupEnv)
}

// LoadFromLookup builds the configuration using lookup as the environment.
func LoadFromLookup(lookup LookupFunc) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		SourceURL:        get("SOURCE_URL"),
		SourceRegion:     get("SOURCE_REGION"),
		SourceRadius:     get("SOURCE_RADIUS"),
		DetailsURLFormat: get("DETAILS_URL_FORMAT"),
		CheckInterval:    positiveDuration(get("CHECK_INTERVAL_MINUTES"), time.Minute, DefaultCheckInterval),
		HTTPTimeout:      positiveDuration(get("HTTP_TIMEOUT_SECONDS"), time.Second, DefaultHTTPTimeout),
		StateFile:        get("STATE_FILE"),
		NotifyURL:        get("NOTIFY_URL"),
		StatusAddr:       get("STATUS_ADDR"),
		LogLevel:         orDefault(get("LOG_LEVEL"), DefaultLogLevel),
		LogFormat:        orDefault(strings.ToLower(get("LOG_FORMAT")), DefaultLogFormat),
	}

	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("%w: SOURCE_URL is required", ErrConfiguration)
	}
	if cfg.StateFile == "" {
		cfg.StateFile = storage.DefaultStatePath
	}
	if cfg.DetailsURLFormat != "" && strings.Count(cfg.DetailsURLFormat, "%s") != 1 {
		return nil, fmt.Errorf("%w: DETAILS_URL_FORMAT must contain exactly one %%s", ErrConfiguration)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("%w: LOG_FORMAT must be json or text, got %q", ErrConfiguration, cfg.LogFormat)
	}

	observer, err := parseObserver(get("OBSERVER_LAT"), get("OBSERVER_LON"), get("OBSERVER_LABEL"))
	if err != nil {
		return nil, err
	}
	cfg.Observer = observer

	if addr := get("STATE_REDIS_ADDR"); addr != "" {
		db := 0
		if raw := get("STATE_REDIS_DB"); raw != "" {
			db, err = strconv.Atoi(raw)
			if err != nil || db < 0 {
				return nil, fmt.Errorf("%w: STATE_REDIS_DB must be a non-negative integer, got %q", ErrConfiguration, raw)
			}
		}
		cfg.Redis = &Redis{
			Addr:     addr,
			Password: get("STATE_REDIS_PASSWORD"),
			DB:       db,
			Key:      orDefault(get("STATE_REDIS_KEY"), storage.DefaultRedisKey),
		}
	}

	token, chatID := get("TELEGRAM_BOT_TOKEN"), get("TELEGRAM_CHAT_ID")
	switch {
	case token != "" && chatID != "":
		cfg.Telegram = &Telegram{BotToken: token, ChatID: chatID}
	case token != "" || chatID != "":
		return nil, fmt.Errorf("%w: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together", ErrConfiguration)
	}

	creds := notifier.TwitterCredentials{
		APIKey:       get("TWITTER_API_KEY"),
		APISecret:    get("TWITTER_API_SECRET"),
		AccessToken:  get("TWITTER_ACCESS_TOKEN"),
		AccessSecret: get("TWITTER_ACCESS_SECRET"),
	}
	switch {
	case creds.Complete():
		cfg.Twitter = &creds
	case creds != (notifier.TwitterCredentials{}):
		return nil, fmt.Errorf("%w: TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET must be set together", ErrConfiguration)
	}

	return cfg, nil
}

// NotificationsEnabled reports whether at least one notification channel is configured.
func (c *Config) NotificationsEnabled() bool {
	return c.NotifyURL != "" || c.Telegram != nil || c.Twitter != nil
}

func parseObserver(rawLat, rawLon, label string) (arcade.Observer, error) {
	if rawLat == "" && rawLon == "" {
		return arcade.NewObserver(DefaultObserverLat, DefaultObserverLon, orDefault(label, DefaultObserverLabel)), nil
	}
	if rawLat == "" || rawLon == "" {
		return arcade.Observer{}, fmt.Errorf("%w: OBSERVER_LAT and OBSERVER_LON must be set together", ErrConfiguration)
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return arcade.Observer{}, fmt.Errorf("%w: OBSERVER_LAT %q is not a number", ErrConfiguration, rawLat)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return arcade.Observer{}, fmt.Errorf("%w: OBSERVER_LON %q is not a number", ErrConfiguration, rawLon)
	}

	observer := arcade.NewObserver(lat, lon, label)
	if !observer.Coordinates.Valid() {
		return arcade.Observer{}, fmt.Errorf("%w: observer %s is out of range", ErrConfiguration, observer.Coordinates)
	}
	return observer, nil
}

func positiveDuration(raw string, unit, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * unit
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
