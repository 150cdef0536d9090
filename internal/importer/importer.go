// Package importer converts the dealer roster spreadsheet into normalized
// dealer records ready for directory seeding.
package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tlc-leads/dealerseed/internal/fetcher"
	"github.com/tlc-leads/dealerseed/internal/model"
)

// The roster sheets have no header row and a fixed positional layout.
// Order matters; the sheet is validated against this width at load time.
var rosterColumns = []string{
	"dealer_name", "contact_name", "notes", "phone", "address",
	"city", "state", "zip", "email", "email2", "extra",
}

// Positional indices into a padded roster row.
const (
	colDealerName = iota
	colContactName
	colNotes
	colPhone
	colAddress
	colCity
	colState
	colZip
	colEmail
	colEmail2
	colExtra
)

const placeholderName = "Unknown"

// Options selects the workbook sheets to read.
type Options struct {
	RosterSheet   string // full roster, one dealer per row
	PrioritySheet string // subset whose dealers get the top priority weight
}

// Summary aggregates what the import produced, for the final report.
type Summary struct {
	RosterRows   int
	PriorityRows int
	Total        int
	Top50        int
	MissingEmail int
	MissingZip   int
	States       []string // sorted, distinct, non-empty
	DuplicateIDs []string // base IDs that collided, sorted
}

// Import reads both roster sheets and returns normalized dealer records
// in original row order. A missing sheet or an unreadable workbook is
// fatal; per-field problems fall back per the cleaning rules and are
// tallied in the summary.
func Import(path string, opts Options) ([]model.Dealer, Summary, error) {
	log := zap.L().With(zap.String("component", "importer"))

	rosterRows, err := fetcher.ReadSheet(path, opts.RosterSheet)
	if err != nil {
		return nil, Summary{}, err
	}
	priorityRows, err := fetcher.ReadSheet(path, opts.PrioritySheet)
	if err != nil {
		return nil, Summary{}, err
	}

	topNames, err := priorityNames(priorityRows)
	if err != nil {
		return nil, Summary{}, err
	}

	log.Info("roster sheets loaded",
		zap.String("path", path),
		zap.Int("roster_rows", len(rosterRows)),
		zap.Int("priority_rows", len(priorityRows)),
	)

	dealers := make([]model.Dealer, 0, len(rosterRows))
	for i, raw := range rosterRows {
		row, err := fetcher.PadRow(raw, len(rosterColumns))
		if err != nil {
			return nil, Summary{}, eris.Wrapf(err, "importer: sheet %q row %d", opts.RosterSheet, i+1)
		}
		dealers = append(dealers, buildDealer(row, topNames))
	}

	summary := dedupeIDs(dealers)
	summary.RosterRows = len(rosterRows)
	summary.PriorityRows = len(priorityRows)
	fillSummary(&summary, dealers)

	if len(summary.DuplicateIDs) > 0 {
		log.Warn("duplicate dealer IDs disambiguated",
			zap.Strings("base_ids", summary.DuplicateIDs))
	}

	return dealers, summary, nil
}

// priorityNames collects the lower-cased, trimmed dealer names from the
// priority sheet. Membership is an exact match on that form.
func priorityNames(rows [][]string) (map[string]struct{}, error) {
	names := make(map[string]struct{}, len(rows))
	for i, raw := range rows {
		row, err := fetcher.PadRow(raw, len(rosterColumns))
		if err != nil {
			return nil, eris.Wrapf(err, "importer: priority sheet row %d", i+1)
		}
		name := strings.ToLower(strings.TrimSpace(row[colDealerName]))
		if name != "" {
			names[name] = struct{}{}
		}
	}
	return names, nil
}

func buildDealer(row []string, topNames map[string]struct{}) model.Dealer {
	name := strings.TrimSpace(row[colDealerName])
	if name == "" {
		name = placeholderName
	}
	_, isTop50 := topNames[strings.ToLower(name)]

	weight := model.WeightStandard
	if isTop50 {
		weight = model.WeightTop50
	}

	zip := cleanZip(row[colZip])
	coverage := []string{}
	if zip != nil {
		coverage = []string{*zip}
	}

	return model.Dealer{
		DealerID:            generateDealerID(name),
		DealerName:          name,
		Status:              model.StatusActive,
		PrimaryContactName:  cleanContactName(row[colContactName]),
		PrimaryContactEmail: cleanEmail(row[colEmail]),
		PrimaryPhone:        cleanPhone(row[colPhone]),
		Address: model.Address{
			Street: optional(strings.TrimSpace(row[colAddress])),
			City:   optional(strings.TrimSpace(row[colCity])),
			State:  cleanState(row[colState]),
			Zip:    zip,
		},
		CoverageZips:       coverage,
		PriorityWeight:     weight,
		LeadDeliveryMethod: model.DefaultLeadDelivery,
		IsTop50:            isTop50,
		Notes:              optional(strings.TrimSpace(row[colNotes])),
	}
}

// dedupeIDs disambiguates colliding dealer IDs in place. The first
// occurrence keeps the bare ID; later ones get _2, _3, ... in row order.
func dedupeIDs(dealers []model.Dealer) Summary {
	counts := make(map[string]int, len(dealers))
	for _, d := range dealers {
		counts[d.DealerID]++
	}

	var dups []string
	seen := make(map[string]int)
	for i := range dealers {
		base := dealers[i].DealerID
		if counts[base] <= 1 {
			continue
		}
		seen[base]++
		if seen[base] > 1 {
			dealers[i].DealerID = fmt.Sprintf("%s_%d", base, seen[base])
		}
	}
	for base, n := range counts {
		if n > 1 {
			dups = append(dups, base)
		}
	}
	sort.Strings(dups)

	return Summary{DuplicateIDs: dups}
}

func fillSummary(s *Summary, dealers []model.Dealer) {
	states := make(map[string]struct{})
	for _, d := range dealers {
		if d.IsTop50 {
			s.Top50++
		}
		if d.PrimaryContactEmail == nil {
			s.MissingEmail++
		}
		if len(d.CoverageZips) == 0 {
			s.MissingZip++
		}
		if d.Address.State != nil {
			states[*d.Address.State] = struct{}{}
		}
	}
	s.Total = len(dealers)
	s.States = make([]string, 0, len(states))
	for st := range states {
		s.States = append(s.States, st)
	}
	sort.Strings(s.States)
}
