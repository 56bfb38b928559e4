package report

import (
	"context"
	"fmt"
	"time"

	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Config carries the knobs the dashboard needs. It is passed in explicitly
// so the service stays testable without touching process state.
type Config struct {
	// TopCategories caps the category slices returned in a summary.
	// Zero means no cap.
	TopCategories int

	// Now supplies the reference instant for relative windows.
	// Defaults to time.Now.
	Now func() time.Time
}

// Service assembles dashboard summaries from the transaction store.
type Service struct {
	transactions  *transaction.Service
	topCategories int
	now           func() time.Time
}

func NewService(txService *transaction.Service, cfg Config) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		transactions:  txService,
		topCategories: cfg.TopCategories,
		now:           now,
	}
}

// Summary is one dashboard payload: overall totals, month-by-month rollups
// and the expense category breakdown for the selected period.
type Summary struct {
	Period     string
	Totals     Totals
	Monthly    []MonthlyRollup
	Categories []CategorySlice
}

// Dashboard fetches the transactions for the window and aggregates them.
// The category breakdown covers expenses only and omits zero-amount slices.
func (s *Service) Dashboard(ctx context.Context, w period.Window, custom *period.Range) (*Summary, error) {
	r, err := period.Resolve(w, custom, s.now())
	if err != nil {
		return nil, err
	}

	filter := transaction.ListFilter{}
	if r != nil {
		filter.StartDate = &r.Start
		if !r.End.IsZero() {
			filter.EndDate = &r.End
		}
	}

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	var expenses []*transaction.Transaction

	for _, tx := range txs {
		if tx.Kind == transaction.KindExpense {
			expenses = append(expenses, tx)
		}
	}

	categories := CategoryBreakdown(expenses)

	// Zero-amount slices carry no signal on a spend chart.
	filtered := categories[:0]

	for _, c := range categories {
		if c.Amount > 0 {
			filtered = append(filtered, c)
		}
	}

	categories = filtered

	if s.topCategories > 0 && len(categories) > s.topCategories {
		categories = categories[:s.topCategories]
	}

	return &Summary{
		Period:     period.Describe(w, custom),
		Totals:     Sum(txs),
		Monthly:    MonthlyRollups(txs),
		Categories: categories,
	}, nil
}
