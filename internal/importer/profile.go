package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column where negative values are expenses.
	amountSigned amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a statement file. Adding support
// for a new layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	DescCol     string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSigned
	DebitCol    string // used when AmountMode == amountSplit
	CreditCol   string // used when AmountMode == amountSplit

	// KindCol, when set, holds explicit income/expense labels and the
	// amount column carries absolute values.
	KindCol string

	// DecimalComma marks layouts with European amounts ("1.234,56").
	DecimalComma bool
}

// requiredCols returns the column names that must all be present in a
// header row for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	if p.KindCol != "" {
		cols = append(cols, p.KindCol)
	}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// Optional columns picked up when the header carries them, regardless of
// which profile matched.
const (
	colCategory      = "Category"
	colSubcategory   = "Subcategory"
	colPaymentMethod = "Payment Method"
	colReference     = "Reference"
)

// profiles is the ordered list of layouts to try during auto-detection.
// More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		// Round-trip of our own CSV export.
		Name:        "native",
		DateCol:     "Date",
		DateLayouts: []string{"2006-01-02", "01/02/2006"},
		DescCol:     "Description",
		AmountMode:  amountSigned,
		AmountCol:   "Amount",
		KindCol:     "Type",
	},
	{
		Name:         "bank split",
		DateCol:      "Date",
		DateLayouts:  []string{"02-01-2006", "02/01/2006", "2006-01-02"},
		DescCol:      "Description",
		AmountMode:   amountSplit,
		DebitCol:     "Debit",
		CreditCol:    "Credit",
		DecimalComma: true,
	},
	{
		Name:         "bank statement",
		DateCol:      "Date",
		DateLayouts:  []string{"02-01-2006", "02/01/2006", "2006-01-02"},
		DescCol:      "Description",
		AmountMode:   amountSigned,
		AmountCol:    "Amount",
		DecimalComma: true,
	},
}
