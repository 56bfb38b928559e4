// Package period resolves named and custom date windows used by the
// dashboard and the export pipeline.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Window is a named relative date range.
type Window string

const (
	WindowLast7Days  Window = "7d"
	WindowLast30Days Window = "30d"
	WindowLast90Days Window = "90d"
	WindowLastYear   Window = "1y"
	WindowAll        Window = "all"
	WindowCustom     Window = "custom"
)

var (
	ErrUnknownWindow = errors.New("unknown period window")
	ErrMissingBounds = errors.New("custom period requires both start and end date")
	ErrInvertedRange = errors.New("custom period start date is after end date")
)

// Range is an inclusive date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// windowDays maps relative windows to their cutoff length.
var windowDays = map[Window]int{
	WindowLast7Days:  7,
	WindowLast30Days: 30,
	WindowLast90Days: 90,
	WindowLastYear:   365,
}

// Resolve turns a window selection into concrete bounds. A nil result means
// no bounds (all time). Named windows compute their cutoff from now exactly
// once so every transaction is judged against the same instant. Custom
// windows are validated before any other work happens.
func Resolve(w Window, custom *Range, now time.Time) (*Range, error) {
	switch w {
	case WindowAll:
		return nil, nil
	case WindowCustom:
		if custom == nil || custom.Start.IsZero() || custom.End.IsZero() {
			return nil, ErrMissingBounds
		}

		if custom.Start.After(custom.End) {
			return nil, ErrInvertedRange
		}

		return &Range{Start: custom.Start, End: custom.End}, nil
	}

	days, ok := windowDays[w]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWindow, w)
	}

	return &Range{Start: now.AddDate(0, 0, -days)}, nil
}

// Contains reports whether t falls within the range. Both bounds are
// inclusive; a zero End means the range is open-ended.
func (r *Range) Contains(t time.Time) bool {
	if t.Before(r.Start) {
		return false
	}

	if !r.End.IsZero() && t.After(r.End) {
		return false
	}

	return true
}

// Filter selects the subset of transactions whose date falls in the window.
// It is a pure function of its inputs; WindowAll returns the input unchanged.
func Filter(txs []*transaction.Transaction, w Window, custom *Range, now time.Time) ([]*transaction.Transaction, error) {
	r, err := Resolve(w, custom, now)
	if err != nil {
		return nil, err
	}

	if r == nil {
		return txs, nil
	}

	var out []*transaction.Transaction

	for _, tx := range txs {
		if r.Contains(tx.Date) {
			out = append(out, tx)
		}
	}

	return out, nil
}

// Describe returns a human-readable label for a window, used in export
// artifacts. It assumes the window has already been validated.
func Describe(w Window, custom *Range) string {
	switch w {
	case WindowLast7Days:
		return "Last 7 days"
	case WindowLast30Days:
		return "Last 30 days"
	case WindowLast90Days:
		return "Last 90 days"
	case WindowLastYear:
		return "Last year"
	case WindowAll:
		return "All time"
	case WindowCustom:
		if custom != nil {
			return fmt.Sprintf("%s to %s",
				custom.Start.Format(time.DateOnly), custom.End.Format(time.DateOnly))
		}
	}

	return string(w)
}

// Parse validates a window string from a query parameter or CLI flag.
// An empty string defaults to all time.
func Parse(s string) (Window, error) {
	switch Window(s) {
	case "":
		return WindowAll, nil
	case WindowLast7Days, WindowLast30Days, WindowLast90Days, WindowLastYear, WindowAll, WindowCustom:
		return Window(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}
