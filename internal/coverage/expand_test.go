package coverage

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/tlc-leads/dealerseed/internal/geo"
	"github.com/tlc-leads/dealerseed/internal/model"
)

// fixtureSource is a small in-memory ZipSource centered on downtown
// San Francisco (94105).
type fixtureSource struct {
	zips   []string
	coords []geom.Coord
	index  map[string]int
}

func newFixtureSource() *fixtureSource {
	entries := []struct {
		zip      string
		lat, lon float64
	}{
		{"94105", 37.7898, -122.3942}, // center
		{"94107", 37.7621, -122.3971}, // ~1.9 mi
		{"94607", 37.8060, -122.2900}, // ~5.8 mi
		{"95014", 37.3220, -122.0450}, // ~37.6 mi
		{"90001", 33.9731, -118.2479}, // ~351 mi
	}
	src := &fixtureSource{index: make(map[string]int)}
	for _, e := range entries {
		src.index[e.zip] = len(src.zips)
		src.zips = append(src.zips, e.zip)
		src.coords = append(src.coords, geo.Coord(e.lat, e.lon))
	}
	return src
}

func (s *fixtureSource) Lookup(zip string) (geom.Coord, bool) {
	i, ok := s.index[zip]
	if !ok {
		return nil, false
	}
	return s.coords[i], true
}

func (s *fixtureSource) All() ([]string, []geom.Coord) {
	return s.zips, s.coords
}

func strp(s string) *string { return &s }

func dealerWithZip(zip *string) model.Dealer {
	cov := []string{}
	if zip != nil {
		cov = []string{*zip}
	}
	return model.Dealer{
		DealerID:     "test_dealer",
		DealerName:   "Test Dealer",
		Status:       model.StatusActive,
		Address:      model.Address{Zip: zip},
		CoverageZips: cov,
	}
}

func TestExpandDealer_WithinRadius(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("94105"))

	outcome := ExpandDealer(&d, 10, src)

	assert.Equal(t, OutcomeExpanded, outcome)
	assert.Equal(t, []string{"94105", "94107", "94607"}, d.CoverageZips)
	require.NotNil(t, d.CoverageRadiusMiles)
	assert.Equal(t, 10, *d.CoverageRadiusMiles)
}

func TestExpandDealer_OwnZipAlwaysIncluded(t *testing.T) {
	src := newFixtureSource()
	for _, radius := range []int{0, 5, 50, 500} {
		d := dealerWithZip(strp("94105"))
		ExpandDealer(&d, radius, src)
		assert.Contains(t, d.CoverageZips, "94105", "radius %d", radius)
	}
}

func TestExpandDealer_ResultSorted(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("94105"))
	ExpandDealer(&d, 1000, src)

	assert.True(t, sort.StringsAreSorted(d.CoverageZips))
	assert.Len(t, d.CoverageZips, 5)
}

func TestExpandDealer_Monotonic(t *testing.T) {
	src := newFixtureSource()

	var prev []string
	for _, radius := range []int{0, 2, 10, 40, 400} {
		d := dealerWithZip(strp("94105"))
		ExpandDealer(&d, radius, src)
		for _, z := range prev {
			assert.Contains(t, d.CoverageZips, z,
				"zip %s covered at a smaller radius but not at %d", z, radius)
		}
		prev = d.CoverageZips
	}
}

func TestExpandDealer_RadiusZeroRoundTrip(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("94105"))

	outcome := ExpandDealer(&d, 0, src)

	assert.Equal(t, OutcomeExpanded, outcome)
	assert.Equal(t, []string{"94105"}, d.CoverageZips)
	require.NotNil(t, d.CoverageRadiusMiles)
	assert.Equal(t, 0, *d.CoverageRadiusMiles)
}

func TestExpandDealer_NoZip(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(nil)

	outcome := ExpandDealer(&d, 50, src)

	assert.Equal(t, OutcomeNoZip, outcome)
	assert.Equal(t, []string{}, d.CoverageZips)
	assert.Nil(t, d.CoverageRadiusMiles)
}

func TestExpandDealer_ZipNotFound(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("10001"))

	outcome := ExpandDealer(&d, 50, src)

	assert.Equal(t, OutcomeNotFound, outcome)
	assert.Equal(t, []string{"10001"}, d.CoverageZips)
	assert.Nil(t, d.CoverageRadiusMiles)
}

func TestExpandDealer_MalformedZipNormalized(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("9"))

	outcome := ExpandDealer(&d, 50, src)

	// "9" normalizes to "00009", which is absent from the table:
	// self-coverage fallback, no radius recorded.
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.Equal(t, []string{"00009"}, d.CoverageZips)
	assert.Nil(t, d.CoverageRadiusMiles)
}

func TestExpandDealer_PreservesOtherFields(t *testing.T) {
	src := newFixtureSource()
	d := dealerWithZip(strp("94105"))
	d.DealerName = "Acme Motors"
	d.PriorityWeight = model.WeightTop50
	d.IsTop50 = true
	d.Notes = strp("keep me")

	ExpandDealer(&d, 10, src)

	assert.Equal(t, "Acme Motors", d.DealerName)
	assert.Equal(t, model.WeightTop50, d.PriorityWeight)
	assert.True(t, d.IsTop50)
	require.NotNil(t, d.Notes)
	assert.Equal(t, "keep me", *d.Notes)
}

func TestExpand_StatsAndOrder(t *testing.T) {
	src := newFixtureSource()
	dealers := []model.Dealer{
		dealerWithZip(strp("94105")), // expands to 3 zips at radius 10
		dealerWithZip(nil),           // skipped, no zip
		dealerWithZip(strp("10001")), // skipped, not found
		dealerWithZip(strp("90001")), // expands to 1 zip at radius 10
	}
	dealers[0].DealerID = "a"
	dealers[1].DealerID = "b"
	dealers[2].DealerID = "c"
	dealers[3].DealerID = "d"

	var calls int
	stats := Expand(dealers, 10, src, func(done, total int) {
		calls++
		assert.Equal(t, 4, total)
	})

	assert.Equal(t, 4, calls)
	assert.Equal(t, 2, stats.Expanded)
	assert.Equal(t, 1, stats.SkippedNoZip)
	assert.Equal(t, 1, stats.SkippedNotFound)
	assert.Equal(t, 4, stats.TotalZips)
	assert.Equal(t, 1, stats.MinCoverage)
	assert.Equal(t, 3, stats.MaxCoverage)
	assert.Equal(t, 2, stats.Avg())

	// Original order preserved.
	assert.Equal(t, []string{"a", "b", "c", "d"},
		[]string{dealers[0].DealerID, dealers[1].DealerID, dealers[2].DealerID, dealers[3].DealerID})
}

func TestStats_AvgEmpty(t *testing.T) {
	assert.Zero(t, Stats{}.Avg())
}
