package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQty parses a quantity cell. Workbook cells arrive as text and may
// carry thousands separators. Returns false for empty or non-numeric cells —
// callers treat those as "no value", never as zero.
func ParseQty(cell string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
