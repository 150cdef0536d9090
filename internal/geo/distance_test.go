package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiles_ZeroDistance(t *testing.T) {
	sf := Coord(37.7749, -122.4194)
	assert.Zero(t, Miles(sf, sf))
}

func TestMiles_KnownDistances(t *testing.T) {
	sf := Coord(37.7749, -122.4194)
	la := Coord(34.0522, -118.2437)
	ny := Coord(40.7128, -74.0060)

	assert.InDelta(t, 347.44, Miles(sf, la), 0.5)
	assert.InDelta(t, 2445.71, Miles(ny, la), 0.5)
}

func TestMiles_Symmetric(t *testing.T) {
	a := Coord(37.7898, -122.3942)
	b := Coord(33.9731, -118.2479)
	assert.InDelta(t, Miles(a, b), Miles(b, a), 1e-9)
}

func TestNormalizeZip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"94105", "94105"},         // already normalized
		{" 94105 ", "94105"},       // whitespace
		{"9", "00009"},             // short, zero-padded
		{"94105-1234", "94105"},    // ZIP+4, non-digits stripped then truncated
		{"0 41-05", "04105"},       // mixed garbage
		{"941051234", "94105"},     // over-long digits truncated
		{"abc", "00000"},           // no digits at all
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeZip(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeZip_Idempotent(t *testing.T) {
	for _, z := range []string{"94105", "00009", "00000", "12345"} {
		assert.Equal(t, z, NormalizeZip(NormalizeZip(z)))
	}
}
