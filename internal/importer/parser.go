package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/mwarren-dev/finsight/internal/encoding"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

// Parser reads statement CSV files and produces transaction params. It
// auto-detects the layout by matching column headers against known
// profiles, so files with preamble lines before the header still parse.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffSeparator(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching statement layout: need at least date, description and amount columns")
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffSeparator picks the field separator from the first non-empty line.
// Bank exports in this corner of the world use ';', our own exports ','.
func sniffSeparator(raw []byte) rune {
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.Count(line, ";") > strings.Count(line, ",") {
			return ';'
		}

		return ','
	}

	return ','
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts transactions from data rows using the matched
// profile. Rows whose date or amount cell does not parse are footer or
// filler lines and are skipped. firstDataRow is the 0-based index of the
// row after the header, kept for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstDataRow int) ([]transaction.CreateParams, error) {
	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := firstDataRow + i + 1 // 1-based file line

		date, ok := parseDate(p, cellValue(row, cols[p.DateCol]))
		if !ok {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, kind, ok := parseRowAmount(p, cols, row)
		if !ok {
			continue
		}

		params = append(params, transaction.CreateParams{
			Kind:          kind,
			Amount:        amount,
			Description:   desc,
			Category:      optional(row, cols, colCategory),
			Subcategory:   optional(row, cols, colSubcategory),
			PaymentMethod: optional(row, cols, colPaymentMethod),
			Reference:     optional(row, cols, colReference),
			Date:          date,
		})
	}

	return params, nil
}

func parseDate(p *Profile, s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseRowAmount extracts the amount and kind from a row based on the
// profile's amount mode.
func parseRowAmount(p *Profile, cols colIndex, row []string) (int64, transaction.Kind, bool) {
	if p.AmountMode == amountSplit {
		return parseSplitAmount(p, row, cols[p.DebitCol], cols[p.CreditCol])
	}

	s := cellValue(row, cols[p.AmountCol])
	if s == "" {
		return 0, "", false
	}

	cents, err := parseCents(s, p.DecimalComma)
	if err != nil || cents == 0 {
		return 0, "", false
	}

	if p.KindCol != "" {
		kind, err := transaction.ParseKind(cellValue(row, cols[p.KindCol]))
		if err != nil {
			return 0, "", false
		}

		return abs(cents), kind, true
	}

	if cents < 0 {
		return -cents, transaction.KindExpense, true
	}

	return cents, transaction.KindIncome, true
}

// parseSplitAmount handles separate debit/credit columns.
func parseSplitAmount(p *Profile, row []string, debitIdx, creditIdx int) (int64, transaction.Kind, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		cents, err := parseCents(s, p.DecimalComma)
		if err == nil && cents != 0 {
			return abs(cents), transaction.KindExpense, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		cents, err := parseCents(s, p.DecimalComma)
		if err == nil && cents != 0 {
			return abs(cents), transaction.KindIncome, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// optional reads a column that only some layouts carry.
func optional(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
