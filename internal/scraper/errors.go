package scraper

import "errors"

var (
	// ErrSourceFetch is returned when the locator page cannot be fetched or answers non-2xx.
	ErrSourceFetch = errors.New("source fetch failed")

	// ErrEmptySource is returned when no valid record could be extracted from the page.
	// It usually means the page markup changed.
	ErrEmptySource = errors.New("no records extracted from source")
)
