package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfonseca/inventorypro/internal/customer"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    customer.CreateParams
		setupMock func(m *customer.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: customer.CreateParams{
				Name:  "Reliance Industries",
				Email: "accounts@reliance.example",
				City:  "Mumbai",
			},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *customer.Customer) error {
						c.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "RepoError",
			params: customer.CreateParams{Name: "Tata Steel"},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := customer.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Name, got.Name)
		})
	}
}

func TestService_List_FiltersByNameAndEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	customers := []*customer.Customer{
		{Name: "Reliance Industries", Email: "accounts@reliance.example"},
		{Name: "Tata Steel", Email: "billing@tatasteel.example"},
		{Name: "Hindustan Unilever", Email: "ap@hul.example"},
	}

	repo.EXPECT().ListCustomers(gomock.Any()).Return(customers, nil).Times(3)

	got, err := svc.List(context.Background(), "tata")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tata Steel", got[0].Name)

	got, err = svc.List(context.Background(), "ACCOUNTS@")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Reliance Industries", got[0].Name)

	got, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
