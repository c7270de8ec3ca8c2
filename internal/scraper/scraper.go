package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

const (
	UserAgent = "closest-arcade/1.0 (github.com/pfrederiksen/closest-arcade)"
	Timeout   = 30 * time.Second
)

// Options configures a Scraper
type Options struct {
	URL              string
	Region           string // optional region code query parameter
	Radius           string // optional radius search parameter
	DetailsURLFormat string
	Timeout          time.Duration
}

// Scraper fetches the locator page and extracts location records
type Scraper struct {
	client    *resty.Client
	url       string
	region    string
	radius    string
	extractor *Extractor
}

// New creates a new Scraper instance.
// Requests are never retried: a failed fetch fails the cycle and waits for the next one.
func New(opts Options) *Scraper {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = Timeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", UserAgent)

	return &Scraper{
		client:    client,
		url:       opts.URL,
		region:    opts.Region,
		radius:    opts.Radius,
		extractor: &Extractor{DetailsURLFormat: opts.DetailsURLFormat},
	}
}

// PageURL returns the locator URL queried for an observer
func (s *Scraper) PageURL(observer arcade.Observer) (string, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("parsing source URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(observer.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(observer.Lon, 'f', -1, 64))
	if s.region != "" {
		q.Set("region", s.region)
	}
	if s.radius != "" {
		q.Set("radius", s.radius)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchListing fetches the locator page for the observer and extracts its records
func (s *Scraper) FetchListing(ctx context.Context, observer arcade.Observer) (*arcade.Listing, error) {
	pageURL, err := s.PageURL(observer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceFetch, err)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching page: %w", ErrSourceFetch, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrSourceFetch, resp.StatusCode())
	}

	return s.extractor.Extract(bytes.NewReader(resp.Body()), pageURL)
}
