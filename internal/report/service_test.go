package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{}).
		Return([]*transaction.Transaction{
			tx(transaction.KindIncome, 100000, "2024-01-10", "Sales"),
			tx(transaction.KindExpense, 30000, "2024-01-15", "Rent"),
			tx(transaction.KindExpense, 10000, "2024-02-20", "Meals"),
		}, nil)

	svc := report.NewService(transaction.NewService(repo), report.Config{
		TopCategories: 8,
		Now:           func() time.Time { return now },
	})

	got, err := svc.Dashboard(context.Background(), period.WindowAll, nil)
	require.NoError(t, err)

	assert.Equal(t, "All time", got.Period)
	assert.Equal(t, int64(100000), got.Totals.Income)
	assert.Equal(t, int64(40000), got.Totals.Expenses)
	assert.Equal(t, int64(60000), got.Totals.Balance)

	require.Len(t, got.Monthly, 2)
	assert.Equal(t, "2024-02", got.Monthly[0].Month)
	assert.Equal(t, "2024-01", got.Monthly[1].Month)

	// Expense categories only: income never shows up as a spend slice.
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "Rent", got.Categories[0].Category)
	assert.InDelta(t, 75.0, got.Categories[0].Percentage, 1e-9)
}

func TestService_Dashboard_WindowBoundsReachStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -30)

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			require.NotNil(t, filter.StartDate)
			assert.Equal(t, cutoff, *filter.StartDate)
			assert.Nil(t, filter.EndDate)
			return nil, nil
		})

	svc := report.NewService(transaction.NewService(repo), report.Config{
		Now: func() time.Time { return now },
	})

	got, err := svc.Dashboard(context.Background(), period.WindowLast30Days, nil)
	require.NoError(t, err)

	// Empty input is a well-formed zero summary, not an error.
	assert.Zero(t, got.Totals)
	assert.Empty(t, got.Monthly)
	assert.Empty(t, got.Categories)
}

func TestService_Dashboard_InvalidCustomRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The store must not be queried when validation fails.
	repo := transaction.NewMockRepository(ctrl)
	svc := report.NewService(transaction.NewService(repo), report.Config{})

	_, err := svc.Dashboard(context.Background(), period.WindowCustom, &period.Range{
		Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.ErrorIs(t, err, period.ErrInvertedRange)
}

func TestService_Dashboard_TopCategoriesCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, 500, "2024-01-01", "A"),
		tx(transaction.KindExpense, 400, "2024-01-01", "B"),
		tx(transaction.KindExpense, 300, "2024-01-01", "C"),
		tx(transaction.KindExpense, 200, "2024-01-01", "D"),
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(txs, nil)

	svc := report.NewService(transaction.NewService(repo), report.Config{TopCategories: 2})

	got, err := svc.Dashboard(context.Background(), period.WindowAll, nil)
	require.NoError(t, err)
	require.Len(t, got.Categories, 2)
	assert.Equal(t, "A", got.Categories[0].Category)
	assert.Equal(t, "B", got.Categories[1].Category)
}
