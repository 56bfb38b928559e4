package budget

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Period is the length of a budget window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidPeriod = errors.New("period must be weekly, monthly or yearly")
	ErrInvalidAmount = errors.New("budget amount must not be negative")
	ErrEmptyCategory = errors.New("budget category is required")
)

// EndDate derives the window end from a start date. It is never stored
// independently of the start date and period.
func (p Period) EndDate(start time.Time) time.Time {
	switch p {
	case PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case PeriodMonthly:
		return start.AddDate(0, 1, 0)
	case PeriodYearly:
		return start.AddDate(1, 0, 0)
	}

	return start
}

func (p Period) valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}

	return false
}

// Budget is a spending ceiling for one category over one period window.
type Budget struct {
	ID        uuid.UUID
	Category  string
	Amount    int64 // Ceiling in cents
	Period    Period
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Status classifies how far along a budget is.
type Status string

const (
	StatusOnTrack  Status = "on_track"
	StatusWarning  Status = "warning"
	StatusExceeded Status = "exceeded"
)

const warningThreshold = 80.0

// Evaluation is the derived, ephemeral state of a budget at one instant.
type Evaluation struct {
	Spent         int64
	Percentage    float64
	Remaining     int64
	Status        Status
	DaysRemaining int
}

// Evaluate sums the expenses charged against the budget's category within
// its window and classifies the result. A zero-amount budget evaluates to
// 0% and on_track rather than dividing by zero. Expiry only drives
// DaysRemaining to zero; the IsActive flag is toggled externally.
func Evaluate(b *Budget, txs []*transaction.Transaction, now time.Time) Evaluation {
	key := report.CategoryKey(b.Category)

	var spent int64

	for _, tx := range txs {
		if tx.Kind != transaction.KindExpense {
			continue
		}

		if report.CategoryKey(tx.Category) != key {
			continue
		}

		if tx.Date.Before(b.StartDate) || tx.Date.After(b.EndDate) {
			continue
		}

		spent += tx.Amount
	}

	ev := Evaluation{
		Spent:     spent,
		Remaining: b.Amount - spent,
		Status:    StatusOnTrack,
	}

	if b.Amount > 0 {
		ev.Percentage = float64(spent) / float64(b.Amount) * 100
	}

	switch {
	case ev.Percentage >= 100:
		ev.Status = StatusExceeded
	case ev.Percentage >= warningThreshold:
		ev.Status = StatusWarning
	}

	if days := math.Ceil(b.EndDate.Sub(now).Hours() / 24); days > 0 {
		ev.DaysRemaining = int(days)
	}

	return ev
}
