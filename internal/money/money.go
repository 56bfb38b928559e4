// Package money renders cent amounts and dates for human consumption.
// The formatter is built from explicit configuration rather than ambient
// process state so exports stay reproducible in tests.
package money

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Formatter struct {
	printer    *message.Printer
	unit       currency.Unit
	dateLayout string
}

// NewFormatter builds a formatter for a BCP-47 locale and an ISO 4217
// currency code. dateLayout is a Go reference layout for rendering dates.
func NewFormatter(locale, currencyCode, dateLayout string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parsing currency %q: %w", currencyCode, err)
	}

	return &Formatter{
		printer:    message.NewPrinter(tag),
		unit:       unit,
		dateLayout: dateLayout,
	}, nil
}

// Amount renders cents as a localized currency string, e.g. "$ 1,234.50".
func (f *Formatter) Amount(cents int64) string {
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(float64(cents)/100)))
}

// RawAmount renders cents as a plain decimal for machine re-import.
func (f *Formatter) RawAmount(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
}

// Date renders a calendar date using the configured layout.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout)
}

// Currency returns the ISO code the formatter renders amounts in.
func (f *Formatter) Currency() string {
	return f.unit.String()
}
