package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

func txOn(date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Kind:   transaction.KindExpense,
		Amount: 100,
		Date:   date,
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		window    period.Window
		custom    *period.Range
		wantStart time.Time
		wantNil   bool
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "AllTime",
			window:  period.WindowAll,
			wantNil: true,
		},
		{
			name:      "SevenDays",
			window:    period.WindowLast7Days,
			wantStart: now.AddDate(0, 0, -7),
		},
		{
			name:      "ThirtyDays",
			window:    period.WindowLast30Days,
			wantStart: now.AddDate(0, 0, -30),
		},
		{
			name:      "NinetyDays",
			window:    period.WindowLast90Days,
			wantStart: now.AddDate(0, 0, -90),
		},
		{
			name:      "OneYear",
			window:    period.WindowLastYear,
			wantStart: now.AddDate(0, 0, -365),
		},
		{
			name:   "CustomValid",
			window: period.WindowCustom,
			custom: &period.Range{
				Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			},
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "CustomMissingBounds",
			window:  period.WindowCustom,
			custom:  nil,
			wantErr: period.ErrMissingBounds,
		},
		{
			name:   "CustomMissingEnd",
			window: period.WindowCustom,
			custom: &period.Range{
				Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			wantErr: period.ErrMissingBounds,
		},
		{
			name:   "CustomInverted",
			window: period.WindowCustom,
			custom: &period.Range{
				Start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			wantErr: period.ErrInvertedRange,
		},
		{
			name:    "Unknown",
			window:  period.Window("14d"),
			wantErr: period.ErrUnknownWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := period.Resolve(tt.window, tt.custom, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, r)
				return
			}

			require.NotNil(t, r)
			assert.Equal(t, tt.wantStart, r.Start)
		})
	}
}

func TestFilter_InclusiveCutoff(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cutoff := now.AddDate(0, 0, -7)

	txs := []*transaction.Transaction{
		txOn(cutoff),                    // exactly at the boundary: included
		txOn(cutoff.AddDate(0, 0, -1)),  // one day before: excluded
		txOn(now),                       // today: included
	}

	got, err := period.Filter(txs, period.WindowLast7Days, nil, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, cutoff, got[0].Date)
	assert.Equal(t, now, got[1].Date)
}

func TestFilter_AllIsIdentity(t *testing.T) {
	now := time.Now()
	txs := []*transaction.Transaction{txOn(now), txOn(now.AddDate(-5, 0, 0))}

	got, err := period.Filter(txs, period.WindowAll, nil, now)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}

func TestFilter_CustomInclusiveBothEnds(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		txOn(start.AddDate(0, 0, -1)),
		txOn(start),
		txOn(end),
		txOn(end.AddDate(0, 0, 1)),
	}

	got, err := period.Filter(txs, period.WindowCustom, &period.Range{Start: start, End: end}, now)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, end, got[1].Date)
}

func TestParse(t *testing.T) {
	w, err := period.Parse("")
	require.NoError(t, err)
	assert.Equal(t, period.WindowAll, w)

	w, err = period.Parse("30d")
	require.NoError(t, err)
	assert.Equal(t, period.WindowLast30Days, w)

	_, err = period.Parse("fortnight")
	assert.ErrorIs(t, err, period.ErrUnknownWindow)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Last 30 days", period.Describe(period.WindowLast30Days, nil))
	assert.Equal(t, "All time", period.Describe(period.WindowAll, nil))
	assert.Equal(t, "2024-01-01 to 2024-01-31", period.Describe(period.WindowCustom, &period.Range{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}))
}
