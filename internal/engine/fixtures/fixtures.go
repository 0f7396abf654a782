// Package fixtures embeds a small classification report and taxonomy dump
// together with the rows expected from them at the top 22 taxa.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// SampleTopN is the taxa count the expected rows were computed for.
const SampleTopN = 22

//go:embed sample.kreport
var Kreport string

//go:embed sample.taxdump
var Taxdump string

//go:embed expected.json
var expectedJSON []byte

// ExpectedRow is a report row expected from the sample inputs.
type ExpectedRow struct {
	Taxon      string `json:"taxon"`
	Name       string `json:"name"`
	Depth      int    `json:"depth"`
	Enrichment string `json:"enrichment"`
	NT90       string `json:"nt90"`
}

// LoadExpected parses the embedded expected.json.
func LoadExpected() ([]ExpectedRow, error) {
	var rows []ExpectedRow
	if err := json.Unmarshal(expectedJSON, &rows); err != nil {
		return nil, fmt.Errorf("parse expected.json: %w", err)
	}
	return rows, nil
}
