package scraper

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

const (
	// FieldSelector marks the name (first) and address lines (rest) of an entry
	FieldSelector = ".shop-field"

	// DefaultDetailsPath is appended to the source origin to build a details link
	DefaultDetailsPath = "/shop.php"

	kmPerMile = 1.609344
)

// actionAttrs are searched in order for the embedded sid/position reference
var actionAttrs = []string{"action", "data-action", "onclick", "href"}

var (
	sidPattern      = regexp.MustCompile(`(?:^|[?&;\s'"])sid=(\d+)`)
	positionPattern = regexp.MustCompile(`@(-?\d{1,3}(?:\.\d+)?),\s*(-?\d{1,3}(?:\.\d+)?)`)

	// "3.4 km", "(3.4 km)" or "Distance: 3.4 km" on a line of its own
	distanceOnlyPattern = regexp.MustCompile(`(?i)^(?:distance\s*:?\s*)?\(?\s*(\d+(?:\.\d+)?)\s*(km|mi|miles?)\s*\)?$`)
	// "433 Opry Mills Dr, Nashville (3.4 km)" with the distance printed inline
	trailingDistancePattern = regexp.MustCompile(`(?i)^(.+?)[\s,(\-]+(\d+(?:\.\d+)?)\s*(km|mi|miles?)\)?$`)
)

// Extractor turns locator page markup into location records
type Extractor struct {
	// DetailsURLFormat receives the record identifier through a single %s.
	// When empty the link is built from the source origin and DefaultDetailsPath.
	DetailsURLFormat string
}

// Extract parses markup and returns the records that can be ranked.
//
// The listing mode is coordinates when any valid record carries a map position, and
// supplied otherwise; records that cannot be ranked in the chosen mode are dropped.
// ErrEmptySource is returned when nothing is left.
func (e *Extractor) Extract(r io.Reader, sourceURL string) (*arcade.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	records := make([]*arcade.Record, 0)
	seen := make(map[string]bool)

	doc.Find("li").Each(func(i int, sel *goquery.Selection) {
		// Wrapper items (menus, nested lists) are not entries themselves
		if sel.Find("li").Length() > 0 {
			return
		}

		rec := e.parseFragment(sel, sourceURL)
		if !rec.Valid() || seen[rec.ID] {
			return
		}
		seen[rec.ID] = true
		records = append(records, rec)
	})

	listing := rankable(records)
	if len(listing.Records) == 0 {
		return nil, ErrEmptySource
	}

	return listing, nil
}

// rankable keeps the records usable in a single ranking mode
func rankable(records []*arcade.Record) *arcade.Listing {
	mode := arcade.ModeSupplied
	for _, rec := range records {
		if rec.Coordinates != nil {
			mode = arcade.ModeCoordinates
			break
		}
	}

	listing := &arcade.Listing{Mode: mode, Records: make([]*arcade.Record, 0, len(records))}
	for _, rec := range records {
		switch {
		case mode == arcade.ModeCoordinates && rec.Coordinates != nil:
			listing.Records = append(listing.Records, rec)
		case mode == arcade.ModeSupplied && rec.DistanceMiles != nil:
			listing.Records = append(listing.Records, rec)
		}
	}
	return listing
}

// parseFragment reads one list item. The returned record may be incomplete.
func (e *Extractor) parseFragment(sel *goquery.Selection, sourceURL string) *arcade.Record {
	rec := &arcade.Record{SourceURL: sourceURL}

	var lines []string
	sel.Find(FieldSelector).Each(func(i int, field *goquery.Selection) {
		if text := cleanText(field.Text()); text != "" {
			lines = append(lines, text)
		}
	})

	if len(lines) > 0 {
		rec.Name = lines[0]
		address, miles, ok := splitAddress(lines[1:])
		rec.Address = address
		if ok {
			rec.DistanceMiles = &miles
		}
	}

	rec.ID, rec.Coordinates = parseAction(actionStrings(sel))
	if rec.ID != "" {
		rec.DetailsURL = e.detailsURL(rec.ID, sourceURL)
	}

	return rec
}

// splitAddress separates distance annotations from the real address lines
func splitAddress(lines []string) (string, float64, bool) {
	var (
		address  []string
		miles    float64
		haveDist bool
	)

	for _, line := range lines {
		if m := distanceOnlyPattern.FindStringSubmatch(line); m != nil {
			if d, ok := toMiles(m[1], m[2]); ok && !haveDist {
				miles, haveDist = d, true
			}
			continue
		}
		if m := trailingDistancePattern.FindStringSubmatch(line); m != nil {
			if d, ok := toMiles(m[2], m[3]); ok {
				if !haveDist {
					miles, haveDist = d, true
				}
				line = strings.TrimRight(strings.TrimSpace(m[1]), ",(-")
				line = strings.TrimSpace(line)
				// a labelled annotation such as "Entfernung: 3 km" has no address part
				if strings.HasSuffix(line, ":") {
					line = ""
				}
			}
		}
		if line != "" {
			address = append(address, line)
		}
	}

	return strings.Join(address, ", "), miles, haveDist
}

func toMiles(value, unit string) (float64, bool) {
	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if strings.EqualFold(unit, "km") {
		return d / kmPerMile, true
	}
	return d, true
}

// actionStrings collects the decoded action-like attribute values of a fragment, the
// item's own attributes first
func actionStrings(sel *goquery.Selection) []string {
	var out []string
	for _, attr := range actionAttrs {
		if v, ok := sel.Attr(attr); ok {
			out = append(out, html.UnescapeString(v))
		}
		sel.Find("[" + attr + "]").Each(func(i int, s *goquery.Selection) {
			if v, ok := s.Attr(attr); ok {
				out = append(out, html.UnescapeString(v))
			}
		})
	}
	return out
}

// parseAction pulls the sid and, when present, the map position out of the first
// action string that carries a sid
func parseAction(actions []string) (string, *arcade.Coordinates) {
	for _, action := range actions {
		m := sidPattern.FindStringSubmatch(action)
		if m == nil {
			continue
		}
		return m[1], parsePosition(action)
	}
	return "", nil
}

func parsePosition(s string) *arcade.Coordinates {
	m := positionPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	c := arcade.Coordinates{Lat: lat, Lon: lon}
	if !c.Valid() {
		return nil
	}
	return &c
}

// cleanText decodes entities left after parsing (double-escaped text is common on the
// locator page), normalizes non-breaking spaces and collapses whitespace
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

func (e *Extractor) detailsURL(id, sourceURL string) string {
	if e.DetailsURLFormat != "" {
		return fmt.Sprintf(e.DetailsURLFormat, id)
	}

	u, err := url.Parse(sourceURL)
	if err != nil || u.Host == "" {
		return DefaultDetailsPath + "?sid=" + id
	}

	details := url.URL{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Path:     DefaultDetailsPath,
		RawQuery: url.Values{"sid": []string{id}}.Encode(),
	}
	return details.String()
}
