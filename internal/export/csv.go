package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// renderCSV writes one row per transaction in filter order, then a blank
// separator row and a labeled summary block. Output is UTF-8 RFC-4180 text.
func renderCSV(txs []*transaction.Transaction, totals report.Totals, opts Options, fmtr *money.Formatter) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(columns(opts)); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		if err := w.Write(csvRow(tx, opts, fmtr)); err != nil {
			return nil, fmt.Errorf("writing row: %w", err)
		}
	}

	amount := fmtr.Amount
	if opts.RawAmounts {
		amount = fmtr.RawAmount
	}

	summary := [][]string{
		{},
		{"Total Income", amount(totals.Income)},
		{"Total Expenses", amount(totals.Expenses)},
		{"Balance", amount(totals.Balance)},
		{"Transactions", strconv.Itoa(totals.Count)},
	}

	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing summary: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	return buf.Bytes(), nil
}

func csvRow(tx *transaction.Transaction, opts Options, fmtr *money.Formatter) []string {
	amount := fmtr.Amount(tx.Amount)
	if opts.RawAmounts {
		amount = fmtr.RawAmount(tx.Amount)
	}

	row := []string{
		fmtr.Date(tx.Date),
		string(tx.Kind),
		tx.Description,
		amount,
		tx.Category,
	}

	if opts.IncludeSubcategory {
		row = append(row, tx.Subcategory)
	}

	if opts.IncludePaymentInfo {
		row = append(row, tx.PaymentMethod, tx.Reference)
	}

	return row
}
