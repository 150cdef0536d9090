// Package model defines the dealer record contract shared by the importer
// and the coverage expander, and persisted as JSON between runs.
package model

// DealerStatus values for the Status field.
const (
	StatusActive = "active"
)

// Priority weights assigned at import time. When two dealers' coverage
// areas overlap, the downstream lead router sends the lead to the dealer
// with the highest PriorityWeight; nothing in this repository enforces
// that rule.
const (
	WeightTop50    = 100
	WeightStandard = 50
)

// DefaultLeadDelivery is the delivery method stamped on every imported
// dealer. Other methods are configured downstream, after seeding.
const DefaultLeadDelivery = "email"

// Address is a dealer's physical location. Optional components marshal
// as null so the seeded documents distinguish "absent" from "empty".
type Address struct {
	Street *string `json:"street"`
	City   *string `json:"city"`
	State  *string `json:"state"` // upper-cased two-letter code when present
	Zip    *string `json:"zip"`   // zero-padded to 5 digits when numeric
}

// Dealer is one directory entry. Created by the importer, mutated by the
// coverage expander, written as an element of a pretty-printed JSON array.
type Dealer struct {
	// DealerID is a URL-safe slug derived from DealerName, unique within
	// one output file (collisions get a numeric suffix).
	DealerID   string `json:"dealer_id"`
	DealerName string `json:"dealer_name"`
	Status     string `json:"status"`

	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	PrimaryPhone        *string `json:"primary_phone"`

	Address Address `json:"address"`

	// CoverageZips is the ordered set of 5-digit ZIP strings the dealer
	// serves. The importer seeds it with the dealer's own ZIP; the
	// expander replaces it with every reference ZIP within the radius.
	CoverageZips []string `json:"coverage_zips"`

	// CoverageRadiusMiles is set only when an expansion actually ran for
	// this dealer. A pointer so that radius 0 still round-trips.
	CoverageRadiusMiles *int `json:"coverage_radius_miles,omitempty"`

	PriorityWeight     int    `json:"priority_weight"`
	LeadDeliveryMethod string `json:"lead_delivery_method"`
	IsTop50            bool   `json:"is_top50"`

	Notes *string `json:"notes"`
}
