// Package store reads and writes the dealer JSON array that the importer
// produces, the expander consumes, and the downstream seeder ingests.
package store

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/tlc-leads/dealerseed/internal/model"
)

// ReadDealers loads a dealer array from a JSON file.
func ReadDealers(path string) ([]model.Dealer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read %s", path)
	}

	var dealers []model.Dealer
	if err := json.Unmarshal(data, &dealers); err != nil {
		return nil, eris.Wrapf(err, "store: parse %s", path)
	}
	return dealers, nil
}

// WriteDealers writes the dealer array as pretty-printed JSON with
// 2-space indentation, the contract format for the seeding pipeline.
func WriteDealers(path string, dealers []model.Dealer) error {
	data, err := json.MarshalIndent(dealers, "", "  ")
	if err != nil {
		return eris.Wrap(err, "store: marshal dealers")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "store: write %s", path)
	}
	return nil
}
