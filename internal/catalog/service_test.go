package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfonseca/inventorypro/internal/catalog"
)

func newService(t *testing.T) (*catalog.Service, *catalog.MockRepository, *catalog.MockSKUSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := catalog.NewMockRepository(ctrl)
	skus := catalog.NewMockSKUSource(ctrl)

	return catalog.NewService(repo, skus, catalog.DefaultStockPolicy()), repo, skus
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    catalog.CreateParams
		setupMock func(repo *catalog.MockRepository, skus *catalog.MockSKUSource)
		wantSKU   string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "GeneratesSKUWhenEmpty",
			params: catalog.CreateParams{
				Name:      "Copper Tubing 15mm",
				Category:  "Piping",
				Kind:      catalog.KindRawMaterial,
				UnitPrice: decimal.NewFromInt(850),
			},
			setupMock: func(repo *catalog.MockRepository, skus *catalog.MockSKUSource) {
				skus.EXPECT().NextSKU(gomock.Any()).Return("PRD-009", nil)
				repo.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *catalog.Entry) error {
						e.ID = uuid.New()
						return nil
					})
			},
			wantSKU: "PRD-009",
		},
		{
			name: "KeepsSuppliedSKU",
			params: catalog.CreateParams{
				SKU:  "PRD-100",
				Name: "Pressure Gauge 0-10 Bar",
				Kind: catalog.KindFinishedProduct,
			},
			setupMock: func(repo *catalog.MockRepository, skus *catalog.MockSKUSource) {
				repo.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *catalog.Entry) error {
						e.ID = uuid.New()
						return nil
					})
			},
			wantSKU: "PRD-100",
		},
		{
			name:   "SKUSourceError",
			params: catalog.CreateParams{Name: "Boiler System"},
			setupMock: func(repo *catalog.MockRepository, skus *catalog.MockSKUSource) {
				skus.EXPECT().NextSKU(gomock.Any()).Return("", errors.New("sequence error"))
			},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: catalog.CreateParams{SKU: "PRD-001", Name: "Boiler System"},
			setupMock: func(repo *catalog.MockRepository, skus *catalog.MockSKUSource) {
				repo.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					Return(catalog.ErrDuplicateSKU)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, skus := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo, skus)
			}

			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSKU, got.SKU)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Create_NegativeInputRejected(t *testing.T) {
	minus := int64(-3)

	type testCase struct {
		name   string
		params catalog.CreateParams
	}

	tests := []testCase{
		{
			name: "NegativePrice",
			params: catalog.CreateParams{
				Name:      "Boiler System",
				UnitPrice: decimal.NewFromInt(-75000),
			},
		},
		{
			name: "NegativeStock",
			params: catalog.CreateParams{
				Name:          "Boiler System",
				StockQuantity: -1,
			},
		},
		{
			name: "NegativeMinStock",
			params: catalog.CreateParams{
				Name:          "Boiler System",
				MinStockLevel: &minus,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No SKU is consumed and nothing is stored for invalid input.
			svc, _, _ := newService(t)

			got, err := svc.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, catalog.ErrNegativeValue)
			assert.Nil(t, got)
		})
	}
}

func TestService_Update_NegativeInputRejected(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.Update(context.Background(), &catalog.Entry{
		ID:            uuid.New(),
		SKU:           "PRD-001",
		Name:          "Boiler System",
		UnitPrice:     decimal.NewFromInt(75000),
		StockQuantity: -4,
	})

	assert.ErrorIs(t, err, catalog.ErrNegativeValue)
}

func TestService_CreateBatch(t *testing.T) {
	svc, repo, skus := newService(t)

	params := []catalog.CreateParams{
		{Name: "Control Valve 2\"", Category: "Controls", Kind: catalog.KindFinishedProduct},
		{SKU: "PRD-050", Name: "Stainless Steel Screws M10", Kind: catalog.KindRawMaterial},
	}

	skus.EXPECT().NextSKU(gomock.Any()).Return("PRD-011", nil)
	repo.EXPECT().
		CreateEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*catalog.Entry) error {
			for _, e := range entries {
				e.ID = uuid.New()
			}
			return nil
		})

	entries, err := svc.CreateBatch(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "PRD-011", entries[0].SKU)
	assert.Equal(t, "PRD-050", entries[1].SKU)
}

func TestService_CreateBatch_Empty(t *testing.T) {
	svc, _, _ := newService(t)

	entries, err := svc.CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func sampleEntries() []*catalog.Entry {
	return []*catalog.Entry{
		{SKU: "PRD-001", Name: "Boiler System - 500kg/hr", Category: "Boilers", Kind: catalog.KindFinishedProduct, StockQuantity: 12},
		{SKU: "PRD-003", Name: "Thermic Fluid Heater", Category: "Heaters", Kind: catalog.KindFinishedProduct, StockQuantity: 3},
		{SKU: "PRD-004", Name: "Industrial Hot Water Generator", Category: "Water Heaters", Kind: catalog.KindFinishedProduct, StockQuantity: 0},
		{SKU: "PRD-005", Name: "Stainless Steel Screws M10", Category: "Fasteners", Kind: catalog.KindRawMaterial, StockQuantity: 150},
		{SKU: "PRD-006", Name: "Copper Tubing 15mm", Category: "Piping", Kind: catalog.KindRawMaterial, StockQuantity: 4},
	}
}

func TestService_List_QueryAndFacet(t *testing.T) {
	type testCase struct {
		name     string
		filter   catalog.ListFilter
		wantSKUs []string
	}

	lowStock := catalog.StatusLowStock
	outOfStock := catalog.StatusOutOfStock

	tests := []testCase{
		{
			name:     "NoFilter",
			filter:   catalog.ListFilter{},
			wantSKUs: []string{"PRD-001", "PRD-003", "PRD-004", "PRD-005", "PRD-006"},
		},
		{
			name:     "QueryOnly",
			filter:   catalog.ListFilter{Query: "heater"},
			wantSKUs: []string{"PRD-003", "PRD-004"},
		},
		{
			name:     "LowStockFacet",
			filter:   catalog.ListFilter{Status: &lowStock},
			wantSKUs: []string{"PRD-003", "PRD-006"},
		},
		{
			name:     "OutOfStockFacet",
			filter:   catalog.ListFilter{Status: &outOfStock},
			wantSKUs: []string{"PRD-004"},
		},
		{
			name:     "QueryPlusFacet",
			filter:   catalog.ListFilter{Query: "heater", Status: &lowStock},
			wantSKUs: []string{"PRD-003"},
		},
		{
			name:     "NoMatches",
			filter:   catalog.ListFilter{Query: "compressor"},
			wantSKUs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().
				ListEntries(gomock.Any(), tt.filter.Kind).
				Return(sampleEntries(), nil)

			got, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)

			skus := make([]string, 0, len(got))
			for _, e := range got {
				skus = append(skus, e.SKU)
			}

			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestService_List_KindPushedToStore(t *testing.T) {
	svc, repo, _ := newService(t)

	kind := catalog.KindRawMaterial
	repo.EXPECT().
		ListEntries(gomock.Any(), &kind).
		Return(nil, nil)

	got, err := svc.List(context.Background(), catalog.ListFilter{Kind: &kind})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_BelowMinimum(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		ListEntries(gomock.Any(), nil).
		Return(sampleEntries(), nil)

	below, err := svc.BelowMinimum(context.Background())
	require.NoError(t, err)

	// PRD-003 (3 ≤ 10), PRD-004 (0), PRD-006 (4 ≤ 5).
	require.Len(t, below, 3)
	assert.Equal(t, "PRD-003", below[0].SKU)
	assert.Equal(t, "PRD-004", below[1].SKU)
	assert.Equal(t, "PRD-006", below[2].SKU)
}

func TestService_AdjustStock(t *testing.T) {
	svc, repo, _ := newService(t)

	id := uuid.New()
	repo.EXPECT().
		AdjustStock(gomock.Any(), id, int64(-2)).
		Return(&catalog.Entry{ID: id, StockQuantity: 10}, nil)

	got, err := svc.AdjustStock(context.Background(), id, -2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.StockQuantity)
}
