package invoice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfonseca/inventorypro/internal/billing"
	"github.com/jfonseca/inventorypro/internal/invoice"
)

func newService(t *testing.T) (*invoice.Service, *invoice.MockRepository, *invoice.MockNumberSource) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := invoice.NewMockRepository(ctrl)
	numbers := invoice.NewMockNumberSource(ctrl)

	return invoice.NewService(repo, numbers), repo, numbers
}

func line(qty int64, price, taxRate string) billing.LineItem {
	return billing.LineItem{
		ProductID:      uuid.New(),
		Quantity:       qty,
		UnitPrice:      decimal.RequireFromString(price),
		TaxRatePercent: decimal.RequireFromString(taxRate),
	}
}

func TestService_CreateDraft(t *testing.T) {
	svc, repo, numbers := newService(t)

	issue := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	params := invoice.CreateParams{
		CustomerID: uuid.New(),
		IssueDate:  issue,
		DueDate:    issue.AddDate(0, 0, 14),
		Items: []billing.LineItem{
			line(2, "75000", "0"),
			line(1, "850", "18"),
		},
	}

	numbers.EXPECT().NextInvoiceNumber(gomock.Any()).Return("INV-007", nil)
	repo.EXPECT().
		CreateInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
			inv.ID = uuid.New()
			inv.CreatedAt = time.Now()
			return nil
		})

	inv, err := svc.CreateDraft(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "INV-007", inv.Number)
	assert.Equal(t, invoice.StatusDraft, inv.Status)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, 0, inv.Items[0].Position)
	assert.Equal(t, 1, inv.Items[1].Position)

	assert.True(t, inv.Subtotal.Equal(decimal.RequireFromString("150850")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(decimal.RequireFromString("153")), "tax = %s", inv.TaxAmount)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("151003")), "total = %s", inv.Total)
}

func TestService_CreateDraft_EmptyItemsAllowed(t *testing.T) {
	svc, repo, numbers := newService(t)

	numbers.EXPECT().NextInvoiceNumber(gomock.Any()).Return("INV-001", nil)
	repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil)

	inv, err := svc.CreateDraft(context.Background(), invoice.CreateParams{CustomerID: uuid.New()})
	require.NoError(t, err)

	assert.Empty(t, inv.Items)
	assert.True(t, inv.Total.IsZero())
}

func TestService_CreateDraft_NumberSourceError(t *testing.T) {
	svc, _, numbers := newService(t)

	numbers.EXPECT().NextInvoiceNumber(gomock.Any()).Return("", errors.New("sequence error"))

	inv, err := svc.CreateDraft(context.Background(), invoice.CreateParams{})
	assert.Error(t, err)
	assert.Nil(t, inv)
}

func TestService_CreateDraft_NegativeLineRejected(t *testing.T) {
	// No number is issued and nothing is stored for invalid input.
	svc, _, _ := newService(t)

	inv, err := svc.CreateDraft(context.Background(), invoice.CreateParams{
		CustomerID: uuid.New(),
		Items: []billing.LineItem{
			line(1, "850", "18"),
			line(-5, "75000", "18"),
		},
	})

	assert.ErrorIs(t, err, billing.ErrNegativeValue)
	assert.Nil(t, inv)
}

func TestService_Finalize(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(repo *invoice.MockRepository, id uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *invoice.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(&invoice.Invoice{
					ID:     id,
					Status: invoice.StatusDraft,
					Items:  []invoice.Item{{LineItem: line(1, "850", "18")}},
				}, nil)
				repo.EXPECT().UpdateStatus(gomock.Any(), id, invoice.StatusPending).Return(nil)
			},
		},
		{
			name: "EmptyDraftBlocked",
			setupMock: func(repo *invoice.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(&invoice.Invoice{
					ID:     id,
					Status: invoice.StatusDraft,
				}, nil)
			},
			wantErr: invoice.ErrEmptyDraft,
		},
		{
			name: "AlreadyIssued",
			setupMock: func(repo *invoice.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(&invoice.Invoice{
					ID:     id,
					Status: invoice.StatusPending,
					Items:  []invoice.Item{{LineItem: line(1, "850", "18")}},
				}, nil)
			},
			wantErr: invoice.ErrNotDraft,
		},
		{
			name: "NotFound",
			setupMock: func(repo *invoice.MockRepository, id uuid.UUID) {
				repo.EXPECT().GetInvoice(gomock.Any(), id).Return(nil, invoice.ErrNotFound)
			},
			wantErr: invoice.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			id := uuid.New()
			tt.setupMock(repo, id)

			inv, err := svc.Finalize(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, inv)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, invoice.StatusPending, inv.Status)
		})
	}
}

func TestService_ReplaceItems_RecomputesTotals(t *testing.T) {
	svc, repo, _ := newService(t)

	id := uuid.New()
	repo.EXPECT().GetInvoice(gomock.Any(), id).Return(&invoice.Invoice{
		ID:     id,
		Status: invoice.StatusDraft,
	}, nil)

	repo.EXPECT().
		ReplaceItems(gomock.Any(), id, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, items []invoice.Item, totals billing.Totals) error {
			require.Len(t, items, 1)
			assert.True(t, totals.Total.Equal(decimal.RequireFromString("8400")))
			return nil
		})

	inv, err := svc.ReplaceItems(context.Background(), id, []billing.LineItem{line(3, "2500", "12")})
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("8400")))
}

func TestService_ReplaceItems_NotDraft(t *testing.T) {
	svc, repo, _ := newService(t)

	id := uuid.New()
	repo.EXPECT().GetInvoice(gomock.Any(), id).Return(&invoice.Invoice{
		ID:     id,
		Status: invoice.StatusPaid,
	}, nil)

	inv, err := svc.ReplaceItems(context.Background(), id, nil)
	assert.ErrorIs(t, err, invoice.ErrNotDraft)
	assert.Nil(t, inv)
}

func TestService_ReplaceItems_NegativeLineRejected(t *testing.T) {
	svc, _, _ := newService(t)

	inv, err := svc.ReplaceItems(context.Background(), uuid.New(),
		[]billing.LineItem{line(3, "-2500", "12")})

	assert.ErrorIs(t, err, billing.ErrNegativeValue)
	assert.Nil(t, inv)
}

func TestService_List_FiltersByQuery(t *testing.T) {
	svc, repo, _ := newService(t)

	invoices := []*invoice.Invoice{
		{Number: "INV-001", CustomerName: "Reliance Industries", Status: invoice.StatusPaid},
		{Number: "INV-002", CustomerName: "Tata Steel", Status: invoice.StatusPending},
		{Number: "INV-003", CustomerName: "Hindustan Unilever", Status: invoice.StatusOverdue},
	}

	repo.EXPECT().
		ListInvoices(gomock.Any(), gomock.Any()).
		Return(invoices, nil)

	got, err := svc.List(context.Background(), invoice.ListFilter{Query: "tata"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "INV-002", got[0].Number)
}

func TestService_List_StatusPassedToStore(t *testing.T) {
	svc, repo, _ := newService(t)

	status := invoice.StatusOverdue
	filter := invoice.ListFilter{Status: &status}

	repo.EXPECT().
		ListInvoices(gomock.Any(), filter).
		Return(nil, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, got)
}
