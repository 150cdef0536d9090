package importer

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"555-1234", strp("555-1234")},
		{"c - 555-1234", strp("555-1234")},
		{"C-555-1234", strp("555-1234")},
		{"555-1234\n555-9999 (shop)", strp("555-1234")},
		{"  555-1234  ", strp("555-1234")},
		{"", nil},
		{"\nsecond line only", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanPhone(tt.in), "input %q", tt.in)
	}
}

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"Sales@Acme.com", strp("sales@acme.com")},
		{"sales@acme.com\nowner@acme.com", strp("sales@acme.com")},
		{"no email on file", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanEmail(tt.in), "input %q", tt.in)
	}
}

func TestCleanState(t *testing.T) {
	assert.Equal(t, strp("CA"), cleanState(" ca "))
	assert.Equal(t, strp("TX"), cleanState("Tx"))
	assert.Nil(t, cleanState("  "))
}

func TestCleanZip(t *testing.T) {
	tests := []struct {
		in   string
		want *string
	}{
		{"94105", strp("94105")},
		{"94105.0", strp("94105")}, // spreadsheet float artifact
		{"812", strp("00812")},     // zero-padded
		{"K1A 0B1", strp("K1A 0B1")}, // not purely digits: passes through
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanZip(tt.in), "input %q", tt.in)
	}
}

var dealerIDPattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

func TestGenerateDealerID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Acme Motors", "acme_motors"},
		{"  Bob's Cars & Trucks!  ", "bob_s_cars_trucks"},
		{"---Dealer---", "dealer"},
		{"A1 Auto", "a1_auto"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, generateDealerID(tt.name))
	}
}

func TestGenerateDealerID_Properties(t *testing.T) {
	names := []string{
		"Acme Motors",
		"Déjà Vu Autos",
		"!!!",
		strings.Repeat("Very Long Dealer Name ", 10),
		"trailing-separator-lands-exactly-at-the-truncation!x",
	}
	for _, name := range names {
		id := generateDealerID(name)
		if id == "" {
			continue // names with no alphanumerics produce an empty slug
		}
		require.LessOrEqual(t, len(id), 50, "name %q", name)
		assert.True(t, dealerIDPattern.MatchString(id),
			"name %q produced id %q", name, id)
	}
}
