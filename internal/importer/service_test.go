package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwarren-dev/finsight/internal/importer"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			assert.Equal(t, "Client invoice", txs[0].Description)
			return nil
		})

	svc := importer.NewService(transaction.NewService(repo), nil)

	input := strings.Join([]string{
		"Date,Type,Description,Amount,Category",
		"2024-01-10,income,Client invoice,1500.00,Sales",
		"2024-01-15,expense,Office rent,800.00,Rent",
	}, "\n")

	txs, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestService_Import_EmptyFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// A header with no data rows never reaches the store.
	repo := transaction.NewMockRepository(ctrl)
	svc := importer.NewService(transaction.NewService(repo), nil)

	_, err := svc.Import(context.Background(), strings.NewReader("Date,Type,Description,Amount,Category\n"))
	assert.ErrorIs(t, err, importer.ErrEmptyFile)
}

type ruleMap map[string]string

func (r ruleMap) Suggest(_ context.Context, description string) (string, error) {
	return r[description], nil
}

func TestService_Import_FillsMissingCategories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
			require.Len(t, txs, 2)
			// Learned rule fills the blank; explicit category wins.
			assert.Equal(t, "Meals", txs[0].Category)
			assert.Equal(t, "Transport", txs[1].Category)
			return nil
		})

	svc := importer.NewService(transaction.NewService(repo), ruleMap{
		"COFFEE SHOP":     "Meals",
		"AIRLINE TICKETS": "Transport",
	})

	input := strings.Join([]string{
		"Date;Description;Amount",
		"05-01-2024;COFFEE SHOP;-12,50",
		"06-01-2024;AIRLINE TICKETS;-250,00",
	}, "\n")

	_, err := svc.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
}
