package service

import (
	"sort"

	"rofoportal/internal/dto"
	"rofoportal/internal/model"

	"github.com/shopspring/decimal"
)

// maxChangeRatio bounds every adjustment to ±40% of its baseline.
var maxChangeRatio = decimal.RequireFromString("0.4")

// AdjustmentBounds returns the accepted [lower, upper] range for a baseline.
// Lower is clamped at zero, so a zero baseline accepts only zero.
func AdjustmentBounds(baseline decimal.Decimal) (lower, upper decimal.Decimal) {
	maxChange := baseline.Mul(maxChangeRatio)
	lower = baseline.Sub(maxChange)
	if lower.IsNegative() {
		lower = decimal.Zero
	}
	upper = baseline.Add(maxChange)
	return lower, upper
}

// ValidateAdjustments checks every candidate cell against its baseline bound.
// A cell is checked only when the role's table carries a numeric baseline for
// that (SKU, month); candidates for unknown SKUs, unknown months, or blank
// baseline cells are skipped — "no assertion", not a failure. Partially
// filled forms are expected.
//
// Returns nil when the whole submission is acceptable. Violations are sorted
// by SKU then month for stable rendering.
func ValidateAdjustments(table *model.ForecastTable, candidates dto.Candidates) []model.Violation {
	var violations []model.Violation
	for sku, months := range candidates {
		if !table.HasSKU(sku) {
			continue
		}
		for month, candidate := range months {
			baseline, ok := table.Baseline(sku, month)
			if !ok {
				continue
			}
			lower, upper := AdjustmentBounds(baseline)
			if candidate.LessThan(lower) || candidate.GreaterThan(upper) {
				violations = append(violations, model.Violation{
					SKU:       sku,
					Month:     month,
					Baseline:  baseline,
					Candidate: candidate,
					Lower:     lower,
					Upper:     upper,
				})
			}
		}
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].SKU != violations[j].SKU {
			return violations[i].SKU < violations[j].SKU
		}
		return violations[i].Month < violations[j].Month
	})
	return violations
}
