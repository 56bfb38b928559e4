package report_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

func tx(kind transaction.Kind, amount int64, date string, category string) *transaction.Transaction {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return &transaction.Transaction{
		Kind:     kind,
		Amount:   amount,
		Date:     d,
		Category: category,
	}
}

func TestSum(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.KindIncome, 100000, "2024-01-10", "Sales"),
		tx(transaction.KindExpense, 30000, "2024-01-15", "Rent"),
		tx(transaction.KindIncome, 50000, "2024-02-01", "Sales"),
	}

	got := report.Sum(txs)

	assert.Equal(t, int64(150000), got.Income)
	assert.Equal(t, int64(30000), got.Expenses)
	assert.Equal(t, got.Income-got.Expenses, got.Balance)
	assert.Equal(t, 3, got.Count)
}

func TestSum_Empty(t *testing.T) {
	got := report.Sum(nil)

	assert.Equal(t, report.Totals{}, got)
}

func TestMonthlyRollups(t *testing.T) {
	// Two January transactions, one in February.
	txs := []*transaction.Transaction{
		tx(transaction.KindIncome, 100000, "2024-01-10", "Sales"),
		tx(transaction.KindExpense, 30000, "2024-01-15", "Rent"),
		tx(transaction.KindIncome, 50000, "2024-02-01", "Sales"),
	}

	got := report.MonthlyRollups(txs)
	require.Len(t, got, 2)

	// Most recent month first.
	assert.Equal(t, report.MonthlyRollup{
		Month:   "2024-02",
		Income:  50000,
		Balance: 50000,
		Count:   1,
	}, got[0])

	assert.Equal(t, report.MonthlyRollup{
		Month:    "2024-01",
		Income:   100000,
		Expenses: 30000,
		Balance:  70000,
		Count:    2,
	}, got[1])
}

func TestMonthlyRollups_Empty(t *testing.T) {
	assert.Empty(t, report.MonthlyRollups(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, 10000, "2024-01-01", "A"),
		tx(transaction.KindExpense, 30000, "2024-01-02", "B"),
	}

	got := report.CategoryBreakdown(txs)
	require.Len(t, got, 2)

	// Sorted descending by amount.
	assert.Equal(t, "B", got[0].Category)
	assert.Equal(t, int64(30000), got[0].Amount)
	assert.InDelta(t, 75.0, got[0].Percentage, 1e-9)

	assert.Equal(t, "A", got[1].Category)
	assert.Equal(t, int64(10000), got[1].Amount)
	assert.InDelta(t, 25.0, got[1].Percentage, 1e-9)
}

func TestCategoryBreakdown_PercentagesSumTo100(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, 3333, "2024-01-01", "A"),
		tx(transaction.KindExpense, 3333, "2024-01-02", "B"),
		tx(transaction.KindExpense, 3334, "2024-01-03", "C"),
		tx(transaction.KindExpense, 1, "2024-01-04", "D"),
	}

	got := report.CategoryBreakdown(txs)
	require.NotEmpty(t, got)

	var sum float64
	for _, s := range got {
		sum += s.Percentage
	}

	assert.Less(t, math.Abs(sum-100)/100, 1e-6)
}

func TestCategoryBreakdown_NormalizesKeys(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, 100, "2024-01-01", "Food"),
		tx(transaction.KindExpense, 200, "2024-01-02", " food "),
		tx(transaction.KindExpense, 300, "2024-01-03", "FOOD"),
	}

	got := report.CategoryBreakdown(txs)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Category)
	assert.Equal(t, int64(600), got[0].Amount)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 100.0, got[0].Percentage, 1e-9)
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	assert.Empty(t, report.CategoryBreakdown(nil))
}

func TestCategoryBreakdown_ZeroTotal(t *testing.T) {
	// A set whose amounts sum to zero must not divide by zero.
	got := report.CategoryBreakdown([]*transaction.Transaction{
		{Kind: transaction.KindExpense, Amount: 0, Category: "Empty", Date: time.Now()},
	})

	require.Len(t, got, 1)
	assert.Zero(t, got[0].Percentage)
}
