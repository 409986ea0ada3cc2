package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []catalog.CreateParams
		wantErr string
	}{
		{
			name: "PlainSheet",
			input: "sku,name,category,kind,price,stock,min_stock\n" +
				"PRD-001,Industrial Boiler,Boilers,finished_product,75000,12,10\n" +
				"PRD-002,Copper Pipe 15mm,Fittings,raw_material,850,140,\n",
			want: []catalog.CreateParams{
				{
					SKU:           "PRD-001",
					Name:          "Industrial Boiler",
					Category:      "Boilers",
					Kind:          catalog.KindFinishedProduct,
					UnitPrice:     decimal.NewFromInt(75000),
					StockQuantity: 12,
					MinStockLevel: new(int64(10)),
				},
				{
					SKU:           "PRD-002",
					Name:          "Copper Pipe 15mm",
					Category:      "Fittings",
					Kind:          catalog.KindRawMaterial,
					UnitPrice:     decimal.NewFromInt(850),
					StockQuantity: 140,
				},
			},
		},
		{
			name: "TitleRowsBeforeHeader",
			input: "Product export,,\n" +
				"Generated 2026-08-12,,\n" +
				"Name,Unit Price,Quantity\n" +
				"Gas Valve,1250.50,30\n",
			want: []catalog.CreateParams{
				{
					Name:          "Gas Valve",
					Kind:          catalog.KindFinishedProduct,
					UnitPrice:     decimal.RequireFromString("1250.50"),
					StockQuantity: 30,
				},
			},
		},
		{
			name: "EuropeanPrices",
			input: "name,price,stock\n" +
				"Heat Exchanger,\"1.234,56\",4\n",
			want: []catalog.CreateParams{
				{
					Name:          "Heat Exchanger",
					Kind:          catalog.KindFinishedProduct,
					UnitPrice:     decimal.RequireFromString("1234.56"),
					StockQuantity: 4,
				},
			},
		},
		{
			name: "BlankAndFooterRowsSkipped",
			input: "name,price\n" +
				"Thermostat,499\n" +
				",\n" +
				",,\n",
			want: []catalog.CreateParams{
				{
					Name:      "Thermostat",
					Kind:      catalog.KindFinishedProduct,
					UnitPrice: decimal.NewFromInt(499),
				},
			},
		},
		{
			name:    "NoHeader",
			input:   "just,some,cells\nwithout,a,header\n",
			wantErr: "no header row found",
		},
		{
			name: "MissingName",
			input: "name,price\n" +
				",850\n",
			wantErr: "row 2: missing product name",
		},
		{
			name: "BadPrice",
			input: "name,price\n" +
				"Widget,abc\n",
			wantErr: `row 2: invalid price "abc"`,
		},
		{
			name: "NegativeStock",
			input: "name,price,stock\n" +
				"Widget,10,-3\n",
			wantErr: `row 2: invalid stock "-3"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewParser().Parse(strings.NewReader(tt.input))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, len(tt.want))

			for i, want := range tt.want {
				assert.Equal(t, want.SKU, got[i].SKU)
				assert.Equal(t, want.Name, got[i].Name)
				assert.Equal(t, want.Category, got[i].Category)
				assert.Equal(t, want.Kind, got[i].Kind)
				assert.True(t, want.UnitPrice.Equal(got[i].UnitPrice),
					"price: want %s, got %s", want.UnitPrice, got[i].UnitPrice)
				assert.Equal(t, want.StockQuantity, got[i].StockQuantity)
				assert.Equal(t, want.MinStockLevel, got[i].MinStockLevel)
			}
		})
	}
}

func TestParser_Parse_Windows1252(t *testing.T) {
	t.Parallel()

	input := append([]byte("name,price\n"), []byte{'V', 0xE1, 'l', 'v', 'u', 'l', 'a', ',', '9', '9'}...)

	got, err := NewParser().Parse(strings.NewReader(string(input)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Válvula", got[0].Name)
}
