// Package report computes dashboard aggregates over transaction sets:
// running totals, monthly rollups and category breakdowns. All aggregation
// functions are pure and never fail for well-typed input; empty input
// yields zero-valued results.
package report

import (
	"sort"
	"strings"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Totals holds a single-pass income/expense summary.
type Totals struct {
	Income   int64
	Expenses int64
	Balance  int64
	Count    int
}

// MonthlyRollup is a per-month aggregate keyed by "YYYY-MM".
type MonthlyRollup struct {
	Month    string
	Income   int64
	Expenses int64
	Balance  int64
	Count    int
}

// CategorySlice is a per-category aggregate with its share of the total.
type CategorySlice struct {
	Category   string
	Amount     int64
	Percentage float64
	Count      int
}

// Sum computes income, expenses and balance in one pass. Balance is always
// income minus expenses, never carried as independent state.
func Sum(txs []*transaction.Transaction) Totals {
	t := Totals{Count: len(txs)}

	for _, tx := range txs {
		switch tx.Kind {
		case transaction.KindIncome:
			t.Income += tx.Amount
		case transaction.KindExpense:
			t.Expenses += tx.Amount
		}
	}

	t.Balance = t.Income - t.Expenses

	return t
}

// MonthlyRollups groups transactions by calendar month and returns one
// rollup per month, most recent first. No history limit is applied;
// truncation for charting is the caller's concern.
func MonthlyRollups(txs []*transaction.Transaction) []MonthlyRollup {
	groups := make(map[string]*MonthlyRollup)

	for _, tx := range txs {
		key := tx.Date.Format("2006-01")

		g, ok := groups[key]
		if !ok {
			g = &MonthlyRollup{Month: key}
			groups[key] = g
		}

		switch tx.Kind {
		case transaction.KindIncome:
			g.Income += tx.Amount
		case transaction.KindExpense:
			g.Expenses += tx.Amount
		}

		g.Count++
	}

	out := make([]MonthlyRollup, 0, len(groups))

	for _, g := range groups {
		g.Balance = g.Income - g.Expenses
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })

	return out
}

// CategoryKey folds a category label for grouping: trimmed and case-folded
// so "Food " and "food" land in the same bucket. The budget evaluator uses
// the same folding so budgets match the categories they were written for.
func CategoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// CategoryBreakdown groups transactions by normalized category and computes
// each group's share of the set's own total. The display name is the
// first-seen trimmed spelling. Output is sorted by amount descending.
func CategoryBreakdown(txs []*transaction.Transaction) []CategorySlice {
	type group struct {
		slice CategorySlice
		order int
	}

	groups := make(map[string]*group)

	var total int64

	for _, tx := range txs {
		key := CategoryKey(tx.Category)

		g, ok := groups[key]
		if !ok {
			g = &group{
				slice: CategorySlice{Category: strings.TrimSpace(tx.Category)},
				order: len(groups),
			}
			groups[key] = g
		}

		g.slice.Amount += tx.Amount
		g.slice.Count++
		total += tx.Amount
	}

	out := make([]CategorySlice, 0, len(groups))

	for _, g := range groups {
		if total > 0 {
			g.slice.Percentage = float64(g.slice.Amount) / float64(total) * 100
		}

		out = append(out, g.slice)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}

		return out[i].Category < out[j].Category
	})

	return out
}
