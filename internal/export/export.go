// Package export renders a filtered transaction set plus its summary into
// a downloadable artifact (CSV or PDF).
package export

import (
	"errors"
	"fmt"

	"github.com/mwarren-dev/finsight/internal/period"
)

// Format selects the output codec.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format string from a request or CLI flag.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatPDF:
		return Format(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options controls one export run.
type Options struct {
	Format Format
	Window period.Window
	Custom *period.Range

	// Column toggles. The base column set is always present.
	IncludeSubcategory bool
	IncludePaymentInfo bool

	// RawAmounts emits plain decimals in the Amount column instead of
	// currency-formatted text, so the CSV re-imports cleanly.
	RawAmounts bool

	// Progress, when set, receives coarse staged percentages (0, 25, 50,
	// 100) for UI feedback. It carries no correctness obligation.
	Progress func(pct int)
}

// Artifact is a rendered export ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

const (
	colDate          = "Date"
	colType          = "Type"
	colDescription   = "Description"
	colAmount        = "Amount"
	colCategory      = "Category"
	colSubcategory   = "Subcategory"
	colPaymentMethod = "Payment Method"
	colReference     = "Reference"
)

// columns returns the header row for the requested column toggles.
func columns(opts Options) []string {
	cols := []string{colDate, colType, colDescription, colAmount, colCategory}

	if opts.IncludeSubcategory {
		cols = append(cols, colSubcategory)
	}

	if opts.IncludePaymentInfo {
		cols = append(cols, colPaymentMethod, colReference)
	}

	return cols
}
