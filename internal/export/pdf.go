package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mwarren-dev/finsight/internal/money"
	"github.com/mwarren-dev/finsight/internal/report"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// renderPDF lays out a summary block followed by the transaction table.
// Rows paginate automatically; the header row repeats on each page.
func renderPDF(txs []*transaction.Transaction, totals report.Totals, opts Options, fmtr *money.Formatter, periodLabel string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Transaction Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 5, tr("Period: "+periodLabel), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Generated: "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	summary := []struct {
		label string
		value string
	}{
		{"Total Income", fmtr.Amount(totals.Income)},
		{"Total Expenses", fmtr.Amount(totals.Expenses)},
		{"Balance", fmtr.Amount(totals.Balance)},
		{"Transactions", strconv.Itoa(totals.Count)},
	}
	for _, row := range summary {
		pdf.CellFormat(45, 6, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(row.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	cols := columns(opts)
	widths := columnWidths(cols)

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, col := range cols {
			pdf.CellFormat(widths[i], 7, col, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}
	header()

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetFillColor(245, 245, 245)

	_, pageH := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()

	for i, tx := range txs {
		if pdf.GetY() > pageH-bottom-12 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}

		fill := i%2 == 1
		for j, cell := range csvRow(tx, opts, fmtr) {
			pdf.CellFormat(widths[j], 6, tr(clip(cell, widths[j])), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("building pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// columnWidths spreads the printable A4 width over the active columns,
// giving Description the slack the fixed-width columns leave behind.
func columnWidths(cols []string) []float64 {
	const printable = 190.0

	fixed := map[string]float64{
		colDate:          22,
		colType:          18,
		colAmount:        26,
		colCategory:      28,
		colSubcategory:   26,
		colPaymentMethod: 28,
		colReference:     24,
	}

	widths := make([]float64, len(cols))
	remaining := printable

	for i, col := range cols {
		if w, ok := fixed[col]; ok {
			widths[i] = w
			remaining -= w
		}
	}

	for i, col := range cols {
		if col == colDescription {
			widths[i] = remaining
		}
	}

	return widths
}

// clip truncates cell text that would overflow its column. Roughly 2mm
// per character at the table font size.
func clip(s string, width float64) string {
	max := int(width / 2)
	if max < 4 {
		return s
	}

	// Counted in runes so the cut never splits a multibyte character.
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}
