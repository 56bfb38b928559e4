package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseCents parses an amount string into cents. With decimalComma set it
// accepts European formatting: "1.234,56" -> 123456, "-588,74" -> -58874.
// Otherwise it expects plain decimals: "1234.56" -> 123456.
func parseCents(s string, decimalComma bool) (int64, error) {
	clean := s

	if decimalComma {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
