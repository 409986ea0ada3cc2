package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfonseca/inventorypro/internal/search"
)

type record struct {
	SKU      string
	Name     string
	Category string
	Low      bool
}

func fields(r record) []string {
	return []string{r.SKU, r.Name, r.Category}
}

var records = []record{
	{SKU: "PRD-001", Name: "Boiler System - 500kg/hr", Category: "Boilers"},
	{SKU: "PRD-002", Name: "Heat Exchanger - HX2000", Category: "Heat Exchangers"},
	{SKU: "PRD-003", Name: "Thermic Fluid Heater", Category: "Heaters", Low: true},
	{SKU: "PRD-006", Name: "Copper Tubing 15mm", Category: "Piping"},
	{SKU: "PRD-008", Name: "Pressure Gauge 0-10 Bar", Category: "Instrumentation", Low: true},
}

func TestFilter_TextMatch(t *testing.T) {
	type testCase struct {
		name     string
		query    string
		wantSKUs []string
	}

	tests := []testCase{
		{
			name:     "EmptyQueryMatchesAll",
			query:    "",
			wantSKUs: []string{"PRD-001", "PRD-002", "PRD-003", "PRD-006", "PRD-008"},
		},
		{
			name:     "CaseInsensitiveName",
			query:    "HEAT",
			wantSKUs: []string{"PRD-002", "PRD-003"},
		},
		{
			name:     "MatchesSKU",
			query:    "prd-006",
			wantSKUs: []string{"PRD-006"},
		},
		{
			name:     "MatchesCategory",
			query:    "piping",
			wantSKUs: []string{"PRD-006"},
		},
		{
			name:     "NoMatches",
			query:    "compressor",
			wantSKUs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search.Filter(records, tt.query, fields)

			skus := make([]string, 0, len(got))
			for _, r := range got {
				skus = append(skus, r.SKU)
			}

			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	got := search.Filter(records, "e", fields)

	// Every result must appear in the same relative order as the input.
	idx := 0

	for _, r := range got {
		for idx < len(records) && records[idx].SKU != r.SKU {
			idx++
		}

		assert.Less(t, idx, len(records), "result %s out of input order", r.SKU)
	}
}

func TestFilter_FacetANDsWithQuery(t *testing.T) {
	lowOnly := func(r record) bool { return r.Low }

	got := search.Filter(records, "", fields, lowOnly)
	assert.Len(t, got, 2)

	got = search.Filter(records, "heat", fields, lowOnly)
	assert.Len(t, got, 1)
	assert.Equal(t, "PRD-003", got[0].SKU)
}

func TestFilter_Idempotent(t *testing.T) {
	lowOnly := func(r record) bool { return r.Low }

	once := search.Filter(records, "a", fields, lowOnly)
	twice := search.Filter(once, "a", fields, lowOnly)

	assert.Equal(t, once, twice)
}

func TestMatches(t *testing.T) {
	assert.True(t, search.Matches("", nil))
	assert.True(t, search.Matches("boiler", []string{"PRD-001", "Boiler System"}))
	assert.False(t, search.Matches("boiler", []string{"PRD-002", "Heat Exchanger"}))
}
