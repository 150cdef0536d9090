// Package coverage expands each dealer's service area from its home ZIP
// to every reference ZIP within a radius.
package coverage

import (
	"sort"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/geo"
	"github.com/tlc-leads/dealerseed/internal/model"
)

// ZipSource is the postal-code coordinate table. Injectable so tests can
// supply a small fixture instead of the real geonames dump.
type ZipSource interface {
	// Lookup returns the coordinate for a normalized 5-digit ZIP.
	Lookup(zip string) (geom.Coord, bool)
	// All returns every ZIP and its coordinate as parallel slices.
	All() ([]string, []geom.Coord)
}

// Outcome classifies what happened to one dealer during expansion.
type Outcome int

const (
	// OutcomeExpanded: ZIP resolved, coverage replaced with the radius set.
	OutcomeExpanded Outcome = iota
	// OutcomeNoZip: dealer has no ZIP at all; coverage emptied.
	OutcomeNoZip
	// OutcomeNotFound: ZIP not in the reference table; dealer covers only
	// its own ZIP.
	OutcomeNotFound
)

// Stats aggregates one expansion run. Min/Max/TotalZips cover only
// dealers that actually expanded.
type Stats struct {
	Expanded        int
	SkippedNoZip    int
	SkippedNotFound int
	TotalZips       int
	MinCoverage     int
	MaxCoverage     int
}

// Avg returns the mean coverage-set size across expanded dealers
// (integer division, zero when nothing expanded).
func (s Stats) Avg() int {
	if s.Expanded == 0 {
		return 0
	}
	return s.TotalZips / s.Expanded
}

func (s *Stats) record(n int) {
	s.Expanded++
	s.TotalZips += n
	if s.Expanded == 1 || n < s.MinCoverage {
		s.MinCoverage = n
	}
	if n > s.MaxCoverage {
		s.MaxCoverage = n
	}
}

// ExpandDealer mutates a single dealer per the resolution rules and
// reports the outcome. Record order and untouched fields are preserved.
func ExpandDealer(d *model.Dealer, radiusMiles int, src ZipSource) Outcome {
	if d.Address.Zip == nil || *d.Address.Zip == "" {
		d.CoverageZips = []string{}
		return OutcomeNoZip
	}

	zip := geo.NormalizeZip(*d.Address.Zip)
	center, ok := src.Lookup(zip)
	if !ok {
		// Not in the reference table; at least cover the dealer's own ZIP.
		d.CoverageZips = []string{zip}
		return OutcomeNotFound
	}

	d.CoverageZips = withinRadius(center, float64(radiusMiles), src)
	r := radiusMiles
	d.CoverageRadiusMiles = &r
	return OutcomeExpanded
}

// Expand runs ExpandDealer over the whole slice in place, logging each
// skip, and returns the aggregate stats. progress, if non-nil, is called
// after each dealer with (index, total).
func Expand(dealers []model.Dealer, radiusMiles int, src ZipSource, progress func(done, total int)) Stats {
	log := zap.L().With(zap.String("component", "coverage"))

	var stats Stats
	for i := range dealers {
		d := &dealers[i]
		switch ExpandDealer(d, radiusMiles, src) {
		case OutcomeNoZip:
			stats.SkippedNoZip++
			log.Warn("dealer has no ZIP code", zap.String("dealer", d.DealerName))
		case OutcomeNotFound:
			stats.SkippedNotFound++
			log.Warn("dealer ZIP not in reference table",
				zap.String("dealer", d.DealerName),
				zap.String("zip", d.CoverageZips[0]),
			)
		case OutcomeExpanded:
			stats.record(len(d.CoverageZips))
		}
		if progress != nil {
			progress(i+1, len(dealers))
		}
	}
	return stats
}

// withinRadius scans the whole reference table and returns every ZIP
// within radiusMiles of center (inclusive), sorted lexicographically.
func withinRadius(center geom.Coord, radiusMiles float64, src ZipSource) []string {
	zips, coords := src.All()

	var nearby []string
	for i, c := range coords {
		if geo.Miles(center, c) <= radiusMiles {
			nearby = append(nearby, zips[i])
		}
	}
	sort.Strings(nearby)
	if nearby == nil {
		nearby = []string{}
	}
	return nearby
}
