package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jfonseca/inventorypro/internal/settings"
)

func TestService_NextInvoiceNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	repo.EXPECT().NextInvoiceSeq(gomock.Any()).Return("INV-", int64(7), nil)

	number, err := svc.NextInvoiceNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-007", number)
}

func TestService_NextInvoiceNumber_WideSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	// The padding is a floor, not a cap.
	repo.EXPECT().NextInvoiceSeq(gomock.Any()).Return("INV-", int64(1205), nil)

	number, err := svc.NextInvoiceNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-1205", number)
}

func TestService_NextSKU(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	repo.EXPECT().NextProductSeq(gomock.Any()).Return("PRD-", int64(9), nil)

	sku, err := svc.NextSKU(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PRD-009", sku)
}

func TestService_NextInvoiceNumber_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := settings.NewMockRepository(ctrl)
	svc := settings.NewService(repo)

	repo.EXPECT().NextInvoiceSeq(gomock.Any()).Return("", int64(0), errors.New("db error"))

	_, err := svc.NextInvoiceNumber(context.Background())
	assert.Error(t, err)
}
