package geo

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/pfrederiksen/closest-arcade/internal/arcade"
)

// ErrNoCandidates is returned when a listing has no record that can be ranked
var ErrNoCandidates = errors.New("no candidate records")

// Ranker resolves the distance of a record from the observer
type Ranker interface {
	Distance(rec *arcade.Record) (float64, bool)
}

// coordinateRanker measures great-circle distance from the observer
type coordinateRanker struct {
	origin arcade.Coordinates
}

func (r coordinateRanker) Distance(rec *arcade.Record) (float64, bool) {
	if rec.Coordinates == nil {
		return 0, false
	}
	return Haversine(r.origin, *rec.Coordinates), true
}

// suppliedRanker trusts the distance printed by the locator page
type suppliedRanker struct{}

func (suppliedRanker) Distance(rec *arcade.Record) (float64, bool) {
	if rec.DistanceMiles == nil {
		return 0, false
	}
	return *rec.DistanceMiles, true
}

// RankerFor returns the ranker for a listing mode
func RankerFor(mode arcade.Mode, observer arcade.Observer) (Ranker, error) {
	switch mode {
	case arcade.ModeCoordinates:
		return coordinateRanker{origin: observer.Coordinates}, nil
	case arcade.ModeSupplied:
		return suppliedRanker{}, nil
	default:
		return nil, fmt.Errorf("unknown ranking mode %q", mode)
	}
}

// Nearest picks the record closest to the observer.
//
// Only the ranker for the listing's mode is consulted, so page-supplied and computed
// distances are never compared against each other. On exactly equal distances the
// record that appears first in the listing wins.
func Nearest(observer arcade.Observer, listing *arcade.Listing, checkedAt time.Time) (*arcade.Closest, error) {
	if listing == nil || len(listing.Records) == 0 {
		return nil, ErrNoCandidates
	}

	ranker, err := RankerFor(listing.Mode, observer)
	if err != nil {
		return nil, err
	}

	var best *arcade.Record
	minDist := math.MaxFloat64
	for _, rec := range listing.Records {
		d, ok := ranker.Distance(rec)
		if !ok {
			continue
		}
		if d < minDist {
			minDist = d
			best = rec
		}
	}

	if best == nil {
		return nil, ErrNoCandidates
	}

	return &arcade.Closest{
		Record:        best,
		DistanceMiles: minDist,
		CheckedAt:     checkedAt,
	}, nil
}
