package arcade

import (
	"fmt"
	"strconv"
	"time"
)

// Mode selects how candidate records are ranked by distance
type Mode string

const (
	// ModeCoordinates ranks records by great-circle distance from their coordinates
	ModeCoordinates Mode = "coordinates"
	// ModeSupplied ranks records by the distance the locator page printed for them
	ModeSupplied Mode = "supplied"
)

// Coordinates is a decimal-degree position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the coordinates fall inside the usual latitude/longitude ranges
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// String formats the pair as "lat,lon"
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Record represents one arcade entry extracted from the locator page
type Record struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Address       string       `json:"address"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	DistanceMiles *float64     `json:"distanceMiles,omitempty"` // distance printed by the page, not recomputed
	DetailsURL    string       `json:"detailsUrl"`
	SourceURL     string       `json:"sourceUrl"`
}

// Valid reports whether the record carries every required field
func (r *Record) Valid() bool {
	return r != nil && r.ID != "" && r.Name != "" && r.Address != ""
}

// Listing is the output of one extraction: records that can be ranked in Mode
type Listing struct {
	Mode    Mode
	Records []*Record
}

// Observer is the fixed position distances are measured from
type Observer struct {
	Coordinates
	Label string
}

// NewObserver creates an observer, labelling it with its coordinates when no label is given
func NewObserver(lat, lon float64, label string) Observer {
	o := Observer{Coordinates: Coordinates{Lat: lat, Lon: lon}, Label: label}
	if o.Label == "" {
		o.Label = o.Coordinates.String()
	}
	return o
}

// Closest is the record judged nearest to the observer for one check
type Closest struct {
	Record        *Record
	DistanceMiles float64
	CheckedAt     time.Time
}

// State returns the persisted form of the result
func (c *Closest) State() *State {
	return &State{
		CheckedAt:     c.CheckedAt.UTC(),
		Closest:       c.Record,
		DistanceMiles: c.DistanceMiles,
	}
}

// State is the last closest result as written to durable storage
type State struct {
	CheckedAt     time.Time `json:"checkedAt"`
	Closest       *Record   `json:"closest"`
	DistanceMiles float64   `json:"distanceMiles"`
}

// Validate checks that a decoded state has the shape written by Closest.State
func (s *State) Validate() error {
	if s == nil {
		return fmt.Errorf("state is empty")
	}
	if s.CheckedAt.IsZero() {
		return fmt.Errorf("missing checkedAt")
	}
	if s.Closest == nil {
		return fmt.Errorf("missing closest record")
	}
	if s.Closest.ID == "" {
		return fmt.Errorf("closest record has no id")
	}
	return nil
}
